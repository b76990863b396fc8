package validation_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/i18n"
	"github.com/dmitrymomot/validation/pkg/metadata"
	"github.com/dmitrymomot/validation/pkg/rules"
)

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()
	v := newValidator(t)

	t.Run("valid bean", func(t *testing.T) {
		violations, err := v.Validate(ctx, validBook())
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("property violation", func(t *testing.T) {
		book := validBook()
		book.Title = "   "

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "title", violations[0].Path.String())
		assert.Equal(t, "must not be blank", violations[0].Message)
		assert.Equal(t, "{validation.not_blank}", violations[0].Template)
		assert.Equal(t, "   ", violations[0].InvalidValue)
		assert.Same(t, book, violations[0].RootBean)
		assert.Same(t, book, violations[0].LeafBean)
		assert.Equal(t, rules.KindNotBlank, violations[0].Descriptor.Kind)
	})

	t.Run("list elements", func(t *testing.T) {
		book := validBook()
		book.Authors = []string{"Alan Donovan", ""}

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		assert.Equal(t, []string{"authors[1]<list element>: must not be blank"}, violations.Strings())
	})

	t.Run("map keys and values", func(t *testing.T) {
		book := validBook()
		book.SectionStartPages = map[string]int{"": 3, "intro": -1}

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"sectionStartPages[]<map key>: must not be blank",
			"sectionStartPages[intro]<map value>: must be greater than 0",
		}, violations.Strings())
	})

	t.Run("cascade into nested bean", func(t *testing.T) {
		book := validBook()
		book.Publisher.Name = ""

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "publisher.name", violations[0].Path.String())
		assert.Same(t, book.Publisher, violations[0].LeafBean)
		assert.Same(t, book, violations[0].RootBean)
	})

	t.Run("value receiver", func(t *testing.T) {
		book := *validBook()
		book.Title = ""

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		assert.True(t, violations.Has("title"))
	})

	t.Run("nil root", func(t *testing.T) {
		_, err := v.Validate(ctx, nil)
		assert.ErrorIs(t, err, validation.ErrNilValue)

		var book *Book
		_, err = v.Validate(ctx, book)
		assert.ErrorIs(t, err, validation.ErrNilValue)
	})

	t.Run("idempotent", func(t *testing.T) {
		book := validBook()
		book.Title = ""
		book.Authors = nil
		book.Publisher.Name = ""

		first, err := v.Validate(ctx, book)
		require.NoError(t, err)
		second, err := v.Validate(ctx, book)
		require.NoError(t, err)
		assert.Equal(t, first.Strings(), second.Strings())
		assert.Len(t, first, 3)
	})
}

func TestValidator_Validate_Null(t *testing.T) {
	ctx := context.Background()
	v := newValidator(t)

	t.Run("nil passes everything but presence rules", func(t *testing.T) {
		book := validBook()
		book.Subtitle = nil
		book.SectionStartPages = nil
		book.Publisher = nil
		book.Authors = nil

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"authors: must not be empty",
			"publisher: must not be null",
		}, violations.Strings())
	})

	t.Run("pointer to value is dereferenced", func(t *testing.T) {
		book := validBook()
		long := "far too long"
		book.Subtitle = &long

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "subtitle: size must be between 1 and 5", violations[0].String())
		assert.Equal(t, long, violations[0].InvalidValue)
	})
}

func TestValidator_Validate_Graphs(t *testing.T) {
	ctx := context.Background()
	v := newValidator(t)

	t.Run("cycle terminates", func(t *testing.T) {
		boss := &Employee{Name: ""}
		clerk := &Employee{Name: "", Manager: boss}
		boss.Reports = []*Employee{clerk}
		boss.Manager = boss

		violations, err := v.Validate(ctx, clerk)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"name: must not be blank",
			"manager.name: must not be blank",
		}, violations.Strings())
	})

	t.Run("shared node is reported once", func(t *testing.T) {
		shared := &Employee{Name: ""}
		team := &Team{Lead: shared, Deputy: shared}

		violations, err := v.Validate(ctx, team)
		require.NoError(t, err)
		assert.Equal(t, []string{"lead.name: must not be blank"}, violations.Strings())
	})

	t.Run("distinct equal nodes are reported separately", func(t *testing.T) {
		team := &Team{Lead: &Employee{}, Deputy: &Employee{}}

		violations, err := v.Validate(ctx, team)
		require.NoError(t, err)
		assert.Equal(t, []string{"lead.name", "deputy.name"}, violations.Paths())
	})

	t.Run("cascade through list", func(t *testing.T) {
		boss := &Employee{Name: "Ada", Reports: []*Employee{{Name: "Grace"}, {Name: ""}}}

		violations, err := v.Validate(ctx, boss)
		require.NoError(t, err)
		assert.Equal(t, []string{"reports[1].name: must not be blank"}, violations.Strings())
	})

	t.Run("slices sharing a backing array are distinct nodes", func(t *testing.T) {
		tags := []string{"go", ""}
		shelf := &Shelf{Notes: []*Note{{Tags: tags[:1]}, {Tags: tags}}}

		violations, err := v.Validate(ctx, shelf)
		require.NoError(t, err)
		assert.Equal(t, []string{"notes[1].tags[1]<list element>: must not be blank"}, violations.Strings())
	})

	t.Run("same slice at one position is reported once", func(t *testing.T) {
		tags := []string{""}
		shelf := &Shelf{Notes: []*Note{{Tags: tags}, {Tags: tags}}}

		violations, err := v.Validate(ctx, shelf)
		require.NoError(t, err)
		assert.Equal(t, []string{"notes[0].tags[0]<list element>"}, violations.Paths())
	})
}

type Placeholder struct{}

type Slot struct {
	First  *Placeholder
	Second *Placeholder
}

func TestValidator_Validate_ZeroSizeBeans(t *testing.T) {
	placeholderMeta := metadata.Describe[Placeholder]("Placeholder").
		Constraint(metadata.NewDescriptor("filled", nil).WithMessage("is a placeholder")).
		Build()
	slotMeta := metadata.Describe[Slot]("Slot").
		Property("first", func(s Slot) any { return s.First }, metadata.Valid()).
		Property("second", func(s Slot) any { return s.Second }, metadata.Valid()).
		Build()

	v, err := validation.New(
		validation.WithMetadata(placeholderMeta, slotMeta),
		validation.WithConstraints(func(reg *constraint.Registry) error {
			return constraint.RegisterFunc(reg, "filled", func(Placeholder, metadata.Descriptor, *constraint.Context) (bool, error) {
				return false, nil
			})
		}),
	)
	require.NoError(t, err)

	violations, err := v.Validate(context.Background(), &Slot{First: &Placeholder{}, Second: &Placeholder{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"first: is a placeholder", "second: is a placeholder"}, violations.Strings())
}

func TestValidator_Validate_Options(t *testing.T) {
	ctx := context.Background()
	v := newValidator(t)

	t.Run("groups", func(t *testing.T) {
		book := validBook()
		book.Pages = 5000
		book.Title = ""

		violations, err := v.Validate(ctx, book)
		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, violations.Paths())

		violations, err = v.Validate(ctx, book, validation.WithGroups("print"))
		require.NoError(t, err)
		assert.Equal(t, []string{"pages: must be less than or equal to 1000"}, violations.Strings())

		violations, err = v.Validate(ctx, book, validation.WithGroups(metadata.DefaultGroup, "print"))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"title", "pages"}, violations.Paths())
	})

	t.Run("property filter skips constraints and cascade", func(t *testing.T) {
		book := validBook()
		book.Title = ""
		book.Publisher.Name = ""

		violations, err := v.Validate(ctx, book, validation.WithPropertyFilter(func(_ any, property string) bool {
			return property != "publisher"
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, violations.Paths())
	})

	t.Run("locale", func(t *testing.T) {
		book := validBook()
		book.Title = ""

		violations, err := v.Validate(ctx, book, validation.WithCallLocale("de"))
		require.NoError(t, err)
		assert.Equal(t, []string{"darf nicht leer sein"}, violations.Get("title"))

		violations, err = v.Validate(i18n.SetLocale(ctx, "de-AT"), book)
		require.NoError(t, err)
		assert.Equal(t, []string{"darf nicht leer sein"}, violations.Get("title"))

		violations, err = v.Validate(i18n.SetLocale(ctx, "de"), book, validation.WithCallLocale("en"))
		require.NoError(t, err)
		assert.Equal(t, []string{"must not be blank"}, violations.Get("title"))
	})

	t.Run("custom messages", func(t *testing.T) {
		custom := newValidator(t, validation.WithMessages(&i18n.MapAdapter{Data: map[string]map[string]any{
			"en": {"validation": map[string]any{"not_blank": "{validatedValue} is blank"}},
		}}))
		book := validBook()
		book.Title = " "

		violations, err := custom.Validate(ctx, book)
		require.NoError(t, err)
		assert.Equal(t, []string{"  is blank"}, violations.Get("title"))
	})
}

func TestValidator_ValidateProperty(t *testing.T) {
	ctx := context.Background()
	v := newValidator(t)

	book := validBook()
	book.Title = ""
	book.Publisher.Name = ""

	violations, err := v.ValidateProperty(ctx, book, "publisher")
	require.NoError(t, err)
	assert.Equal(t, []string{"publisher.name: must not be blank"}, violations.Strings())

	violations, err = v.ValidateProperty(ctx, book, "title")
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, violations.Paths())

	_, err = v.ValidateProperty(ctx, book, "isbn")
	assert.ErrorIs(t, err, validation.ErrUnknownProperty)
}

func TestValidator_ValidateValue(t *testing.T) {
	ctx := context.Background()
	v := newValidator(t)
	bookType := reflect.TypeFor[Book]()

	violations, err := v.ValidateValue(ctx, bookType, "authors", []string{"ok", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"authors[1]<list element>: must not be blank"}, violations.Strings())
	assert.Nil(t, violations[0].RootBean)

	violations, err = v.ValidateValue(ctx, bookType, "publisher", &Publisher{})
	require.NoError(t, err)
	assert.Empty(t, violations, "ValidateValue does not cascade")

	violations, err = v.ValidateValue(ctx, bookType, "publisher", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"publisher: must not be null"}, violations.Strings())

	_, err = v.ValidateValue(ctx, reflect.TypeFor[Publisher](), "title", "x")
	assert.ErrorIs(t, err, validation.ErrUnknownProperty)

	_, err = v.ValidateValue(ctx, reflect.TypeFor[HolidayService](), "x", "x")
	assert.ErrorIs(t, err, validation.ErrMissingMetadata)
}

type ISBN struct {
	Code string
}

func TestValidator_CustomConstraints(t *testing.T) {
	ctx := context.Background()

	isbnMeta := metadata.Describe[ISBN]("ISBN").
		Constraint(metadata.NewDescriptor("isbn", nil)).
		Property("code", func(i ISBN) any { return i.Code }, metadata.NewDescriptor("checksum", nil)).
		Build()

	boom := errors.New("checksum service down")
	register := func(reg *constraint.Registry) error {
		if err := constraint.RegisterFunc(reg, "isbn", func(i ISBN, _ metadata.Descriptor, c *constraint.Context) (bool, error) {
			if len(i.Code) == 13 {
				return true, nil
			}
			c.DisableDefaultViolation()
			c.BuildViolation("custom invalid: {length}").
				AtProperty("code").
				WithParameter("length", len(i.Code)).
				Add()
			return false, nil
		}); err != nil {
			return err
		}
		return constraint.RegisterFunc(reg, "checksum", func(code string, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
			if code == "fail" {
				return false, boom
			}
			return true, nil
		})
	}

	v, err := validation.New(
		validation.WithMetadata(isbnMeta),
		validation.WithConstraints(register),
	)
	require.NoError(t, err)

	t.Run("custom violation replaces the default one", func(t *testing.T) {
		violations, err := v.Validate(ctx, ISBN{Code: "123"})
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, "code: custom invalid: 3", violations[0].String())
		assert.Equal(t, "custom invalid: {length}", violations[0].Template)
	})

	t.Run("unit failure aborts validation", func(t *testing.T) {
		_, err := v.Validate(ctx, &ISBN{Code: "fail"})
		require.Error(t, err)

		var execErr *validation.ExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "code", execErr.Path.String())
		assert.Equal(t, "checksum", execErr.Constraint.Kind)
	})
}

func TestNew_ConfigurationErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("constraint without validator", func(t *testing.T) {
		meta := metadata.Describe[Publisher]("Publisher").
			Property("name", func(p Publisher) any { return p.Name }, metadata.NewDescriptor("isbn13", nil)).
			Build()

		_, err := validation.New(validation.WithMetadata(meta))
		require.Error(t, err)

		var cfgErr *validation.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.ErrorIs(t, err, constraint.ErrNoValidator)
		assert.Equal(t, reflect.TypeFor[Publisher](), cfgErr.Type)
	})

	t.Run("resolver supplies missing validators", func(t *testing.T) {
		meta := metadata.Describe[Publisher]("Publisher").
			Property("name", func(p Publisher) any { return p.Name }, metadata.NewDescriptor("isbn13", nil)).
			Build()
		resolver := constraint.ResolverFunc(func(kind, _ string) (constraint.Validator, bool) {
			if kind != "isbn13" {
				return nil, false
			}
			return constraint.Func(func(value any, _ metadata.Descriptor, _ *constraint.Context) (bool, error) {
				s, _ := value.(string)
				return len(s) == 13, nil
			}), true
		})

		v, err := validation.New(validation.WithMetadata(meta), validation.WithResolver(resolver))
		require.NoError(t, err)

		violations, err := v.Validate(ctx, Publisher{Name: "short"})
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, violations.Paths())
	})

	t.Run("duplicate custom unit", func(t *testing.T) {
		_, err := validation.New(validation.WithConstraints(func(reg *constraint.Registry) error {
			return reg.Register(rules.KindNotBlank, constraint.Kinds(reflect.String),
				constraint.Func(func(any, metadata.Descriptor, *constraint.Context) (bool, error) {
					return true, nil
				}))
		}))
		assert.ErrorIs(t, err, validation.ErrInvalidConfig)
		assert.ErrorIs(t, err, constraint.ErrDuplicateValidator)
	})

	t.Run("cascade into type without metadata", func(t *testing.T) {
		v, err := validation.New(validation.WithMetadata(bookMeta))
		require.NoError(t, err)

		_, err = v.Validate(ctx, validBook())
		var cfgErr *validation.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.ErrorIs(t, err, validation.ErrMissingMetadata)
		assert.Equal(t, "publisher", cfgErr.Element)
	})

	t.Run("root without metadata", func(t *testing.T) {
		v := newValidator(t)
		_, err := v.Validate(ctx, HolidayService{})
		assert.ErrorIs(t, err, validation.ErrMissingMetadata)
	})

	t.Run("must new panics", func(t *testing.T) {
		meta := metadata.Describe[Publisher]("Publisher").
			Property("name", func(p Publisher) any { return p.Name }, metadata.NewDescriptor("nope", nil)).
			Build()
		assert.Panics(t, func() { validation.MustNew(validation.WithMetadata(meta)) })
	})
}
