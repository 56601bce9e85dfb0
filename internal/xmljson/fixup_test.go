package xmljson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteFixup(t *testing.T) {
	inner := NewObject()
	inner.Set("@local", "no")
	inner.Set("$", "widget.h")

	root := NewObject()
	root.Set("@version", "1.9.1")
	root.Set("@static", "yes")
	root.Set("name", "no")
	root.Set("notes", []any{"no", "nothing", int64(3), nil})
	root.Set("includes", []any{inner})

	fixed := SiteFixup(root)

	data, err := Marshal(fixed)
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":"1.9.1","static":"yes","name":"false","notes":["false","nothing",3,null],`+
			`"includes":[{"local":"false","value":"widget.h"}]}`,
		string(data))
	assert.Same(t, root, fixed, "objects are rewritten in place")
}

func TestSiteFixup_Scalars(t *testing.T) {
	assert.Equal(t, "false", SiteFixup("no"))
	assert.Equal(t, "No", SiteFixup("No"))
	assert.Equal(t, int64(1), SiteFixup(int64(1)))
	assert.Nil(t, SiteFixup(nil))
}

func TestObject_Order(t *testing.T) {
	o := NewObject()
	o.Set("b", 1)
	o.Set("a", 2)
	o.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, o.Keys())
	assert.Equal(t, 2, o.Len())
	v, ok := o.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	data, err := o.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":3,"a":2}`, string(data))
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	o := NewObject()
	o.Set("code", "a < b && c > d")

	data, err := Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"code":"a < b && c > d"}`, string(data))
}
