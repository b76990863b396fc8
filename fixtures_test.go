package validation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/rules"
)

type Publisher struct {
	Name string
}

type Book struct {
	Title             string
	Subtitle          *string
	Authors           []string
	SectionStartPages map[string]int
	Publisher         *Publisher
	Pages             int
}

type Employee struct {
	Name    string
	Manager *Employee
	Reports []*Employee
}

type Team struct {
	Lead   *Employee
	Deputy *Employee
}

type Note struct {
	Tags []string
}

type Shelf struct {
	Notes []*Note
}

type HolidayService struct{}

var publisherMeta = metadata.Describe[Publisher]("Publisher").
	Property("name", func(p Publisher) any { return p.Name }, rules.NotBlank()).
	Build()

var bookMeta = metadata.Describe[Book]("Book").
	Property("title", func(b Book) any { return b.Title }, rules.NotBlank()).
	Property("subtitle", func(b Book) any { return b.Subtitle }, rules.Size(1, 5)).
	Property("authors", func(b Book) any { return b.Authors },
		rules.NotEmpty(),
		metadata.Elements(rules.NotBlank()),
	).
	Property("sectionStartPages", func(b Book) any { return b.SectionStartPages },
		metadata.Keys(rules.NotBlank()),
		metadata.Values(rules.Positive()),
	).
	Property("publisher", func(b Book) any { return b.Publisher }, rules.NotNull(), metadata.Valid()).
	Property("pages", func(b Book) any { return b.Pages }, rules.Max(1000).WithGroups("print")).
	Build()

var employeeMeta = metadata.Describe[Employee]("Employee").
	Property("name", func(e Employee) any { return e.Name }, rules.NotBlank()).
	Property("manager", func(e Employee) any { return e.Manager }, metadata.Valid()).
	Property("reports", func(e Employee) any { return e.Reports }, metadata.Valid()).
	Build()

var teamMeta = metadata.Describe[Team]("Team").
	Property("lead", func(t Team) any { return t.Lead }, metadata.Valid()).
	Property("deputy", func(t Team) any { return t.Deputy }, metadata.Valid()).
	Build()

var noteMeta = metadata.Describe[Note]("Note").
	Property("tags", func(n Note) any { return n.Tags }, metadata.Elements(rules.NotBlank())).
	Build()

var shelfMeta = metadata.Describe[Shelf]("Shelf").
	Property("notes", func(s Shelf) any { return s.Notes }, metadata.Valid()).
	Build()

var holidayMeta = metadata.Describe[HolidayService]("HolidayService").
	Method(metadata.NewMethod("startHoliday").
		Param("person", rules.NotBlank()).
		Param("duration", rules.Pattern(`\d+d`).WithMessage("'{validatedValue}' is not a duration"))).
	Method(metadata.NewMethod("notify").
		Param("names", metadata.Elements(rules.NotBlank()))).
	Method(metadata.NewMethod("lookup").
		Param("id", rules.UUID()).
		Returns(rules.NotNull(), metadata.Elements(rules.NotBlank()))).
	Method(metadata.NewMethod("plan").
		Param("from", rules.NotNull()).
		Param("to", rules.NotNull()).
		CrossParameter(metadata.NewDescriptor("ordered_range", nil).WithMessage("{from} must not be after {to}"))).
	Method(metadata.NewMethod("describe").
		Returns(metadata.Valid())).
	Constructor(metadata.NewConstructor("NewHolidayService").
		Param("days", rules.Positive())).
	Build()

func validBook() *Book {
	return &Book{
		Title:             "The Go Programming Language",
		Authors:           []string{"Alan Donovan", "Brian Kernighan"},
		SectionStartPages: map[string]int{"intro": 1, "types": 27},
		Publisher:         &Publisher{Name: "Addison-Wesley"},
		Pages:             380,
	}
}

func newValidator(t *testing.T, opts ...validation.Option) *validation.Validator {
	t.Helper()
	opts = append([]validation.Option{
		validation.WithMetadata(publisherMeta, bookMeta, employeeMeta, teamMeta, noteMeta, shelfMeta),
	}, opts...)
	v, err := validation.New(opts...)
	require.NoError(t, err)
	return v
}
