package metadata_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation/pkg/metadata"
)

type book struct {
	Title   string
	Authors []string
	Pages   map[string]int
	Author  *author
}

type author struct {
	Name string
}

var notBlank = metadata.NewDescriptor("not_blank", nil)

func TestDescriptor(t *testing.T) {
	t.Run("default message is a bundle key", func(t *testing.T) {
		assert.Equal(t, "{validation.not_blank}", notBlank.Message())
	})

	t.Run("with methods copy", func(t *testing.T) {
		base := metadata.NewDescriptor("min", map[string]any{"value": 3})
		custom := base.WithMessage("too small").WithAttribute("value", 5)

		assert.Equal(t, "{validation.min}", base.Message())
		assert.Equal(t, 3, base.Attributes["value"])
		assert.Equal(t, "too small", custom.Message())
		assert.Equal(t, 5, custom.Attributes["value"])
	})

	t.Run("message attributes exclude the template", func(t *testing.T) {
		d := metadata.NewDescriptor("min", map[string]any{"value": 3}).WithMessage("x")
		attrs := d.MessageAttributes()
		assert.Equal(t, map[string]any{"value": 3}, attrs)
	})

	t.Run("groups", func(t *testing.T) {
		assert.True(t, notBlank.InGroups(nil))
		assert.True(t, notBlank.InGroups([]string{metadata.DefaultGroup}))
		assert.False(t, notBlank.InGroups([]string{"strict"}))

		strict := notBlank.WithGroups("strict")
		assert.False(t, strict.InGroups(nil))
		assert.True(t, strict.InGroups([]string{"strict", metadata.DefaultGroup}))
	})

	t.Run("string includes the override", func(t *testing.T) {
		assert.Equal(t, "not_blank", notBlank.String())
		assert.Equal(t, "not_blank(strict)", notBlank.WithValidatedBy("strict").String())
	})
}

func TestElement(t *testing.T) {
	t.Run("unconstrained element", func(t *testing.T) {
		e := metadata.NewElement("x")
		assert.False(t, e.IsConstrained())
		assert.Nil(t, e.TypeArgument(metadata.ElementArgument))
	})

	t.Run("constrained through a type argument", func(t *testing.T) {
		e := metadata.NewElement("authors", metadata.Elements(notBlank))
		require.True(t, e.IsConstrained())
		arg := e.TypeArgument(metadata.ElementArgument)
		require.NotNil(t, arg)
		assert.Equal(t, []metadata.Descriptor{notBlank}, arg.Constraints())
		assert.False(t, arg.IsCascaded())
	})

	t.Run("cascade passes to elements", func(t *testing.T) {
		e := metadata.NewElement("authors", metadata.Valid(), metadata.Elements(notBlank))
		item := e.ItemArgument(metadata.ElementArgument)
		require.NotNil(t, item)
		assert.True(t, item.IsCascaded())
		assert.Equal(t, []metadata.Descriptor{notBlank}, item.Constraints())
		// the declared argument is not modified
		assert.False(t, e.TypeArgument(metadata.ElementArgument).IsCascaded())
	})

	t.Run("cascade reaches nested containers without declarations", func(t *testing.T) {
		e := metadata.NewElement("matrix", metadata.Valid())
		inner := e.ItemArgument(metadata.ElementArgument)
		require.NotNil(t, inner)
		assert.True(t, inner.IsCascaded())
		assert.True(t, inner.ItemArgument(metadata.ElementArgument).IsCascaded())
	})

	t.Run("keys and values", func(t *testing.T) {
		positive := metadata.NewDescriptor("positive", nil)
		e := metadata.NewElement("pages", metadata.Keys(notBlank), metadata.Values(positive))
		assert.Equal(t, []metadata.Descriptor{notBlank}, e.TypeArgument(metadata.KeyArgument).Constraints())
		assert.Equal(t, []metadata.Descriptor{positive}, e.TypeArgument(metadata.ValueArgument).Constraints())
		assert.Len(t, e.AllConstraints(), 2)
	})

	t.Run("type argument depth is truncated", func(t *testing.T) {
		opt := metadata.Option(notBlank)
		for range metadata.MaxTypeArgumentDepth + 3 {
			opt = metadata.Elements(opt)
		}
		e := metadata.NewElement("deep", opt)

		depth := 0
		for arg := e.TypeArgument(0); arg != nil; arg = arg.TypeArgument(0) {
			depth++
		}
		assert.Equal(t, metadata.MaxTypeArgumentDepth, depth)
	})
}

func TestBeanBuilder(t *testing.T) {
	bean := metadata.Describe[book]("Book").
		Property("title", func(b book) any { return b.Title }, notBlank).
		Property("author", func(b book) any { return b.Author }, metadata.Valid()).
		Constraint(metadata.NewDescriptor("expression", map[string]any{"expression": "true"})).
		Method(metadata.NewMethod("rename").Param("title", notBlank)).
		Constructor(metadata.NewConstructor("newBook").Param("title", notBlank)).
		Build()

	t.Run("properties keep declaration order", func(t *testing.T) {
		props := bean.Properties()
		require.Len(t, props, 2)
		assert.Equal(t, "title", props[0].Name())
		assert.Equal(t, "author", props[1].Name())
	})

	t.Run("getter accepts values and pointers", func(t *testing.T) {
		title, ok := bean.Property("title")
		require.True(t, ok)
		b := book{Title: "Go"}
		assert.Equal(t, "Go", title.Get(b))
		assert.Equal(t, "Go", title.Get(&b))
		assert.Nil(t, title.Get((*book)(nil)))
		assert.Nil(t, title.Get("not a book"))
	})

	t.Run("executables", func(t *testing.T) {
		m, ok := bean.Method("rename")
		require.True(t, ok)
		assert.False(t, m.IsConstructor())
		assert.Equal(t, "title", m.Parameter(0).Name())
		assert.Nil(t, m.Parameter(1))

		c, ok := bean.Constructor("newBook")
		require.True(t, ok)
		assert.True(t, c.IsConstructor())

		_, ok = bean.Method("newBook")
		assert.False(t, ok)
		assert.Len(t, bean.Methods(), 2)
	})

	t.Run("constrained", func(t *testing.T) {
		assert.True(t, bean.IsConstrained())
		assert.Len(t, bean.Constraints(), 1)
		assert.Len(t, bean.AllConstraints(), 4)
	})

	t.Run("default name", func(t *testing.T) {
		assert.Equal(t, "metadata_test.author", metadata.Describe[author]("").Build().Name())
	})
}

func TestRegistry(t *testing.T) {
	bookMeta := metadata.Describe[book]("Book").
		Property("title", func(b book) any { return b.Title }, notBlank).
		Build()

	t.Run("lookup resolves pointers", func(t *testing.T) {
		reg, err := metadata.NewRegistry(bookMeta)
		require.NoError(t, err)

		b, ok := reg.Lookup(reflect.TypeFor[*book]())
		require.True(t, ok)
		assert.Same(t, bookMeta, b)

		b, ok = reg.LookupValue(book{})
		require.True(t, ok)
		assert.Same(t, bookMeta, b)

		_, ok = reg.LookupValue(author{})
		assert.False(t, ok)
		_, ok = reg.Lookup(nil)
		assert.False(t, ok)
	})

	t.Run("duplicates are rejected", func(t *testing.T) {
		reg, err := metadata.NewRegistry(bookMeta)
		require.NoError(t, err)

		err = reg.Register(metadata.Describe[*book]("Other").Build())
		assert.ErrorIs(t, err, metadata.ErrDuplicateBean)
		assert.Len(t, reg.Beans(), 1)
	})

	t.Run("invalid beans are rejected", func(t *testing.T) {
		_, err := metadata.NewRegistry(nil)
		assert.ErrorIs(t, err, metadata.ErrNilBean)

		_, err = metadata.NewRegistry(metadata.Describe[author]("A").
			Property("name", func(a author) any { return a.Name }).
			Property("name", func(a author) any { return a.Name }).
			Build())
		assert.ErrorIs(t, err, metadata.ErrDuplicateProperty)

		_, err = metadata.NewRegistry(metadata.Describe[author]("A").
			Property("name", nil).
			Build())
		assert.ErrorIs(t, err, metadata.ErrNilGetter)

		_, err = metadata.NewRegistry(metadata.Describe[author]("A").
			Property("name", func(a author) any { return a.Name }, metadata.NewDescriptor("", nil)).
			Build())
		assert.ErrorIs(t, err, metadata.ErrEmptyKind)

		_, err = metadata.NewRegistry(metadata.Describe[author]("A").
			Method(metadata.NewMethod("m")).
			Method(metadata.NewMethod("m")).
			Build())
		assert.ErrorIs(t, err, metadata.ErrDuplicateMethod)
	})
}
