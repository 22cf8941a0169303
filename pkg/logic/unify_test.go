package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifySignatureMismatch(t *testing.T) {
	a := NewLiteral("p", NewConstant("x"))
	b := NewLiteral("p", NewConstant("x"), NewConstant("y"))
	_, ok := Unify(a, b)
	assert.False(t, ok, "different arities must fail to unify")
}

func TestUnifyConstants(t *testing.T) {
	t.Run("equal constants succeed with no bindings", func(t *testing.T) {
		a := NewLiteral("p", NewConstant("x"))
		b := NewLiteral("p", NewConstant("x"))
		s, ok := Unify(a, b)
		require.True(t, ok)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("different constants fail", func(t *testing.T) {
		a := NewLiteral("p", NewConstant("x"))
		b := NewLiteral("p", NewConstant("y"))
		_, ok := Unify(a, b)
		assert.False(t, ok)
	})
}

func TestUnifyVariableBinding(t *testing.T) {
	x := NewUserVariable("X")
	a := NewLiteral("p", x)
	b := NewLiteral("p", NewConstant("hello"))
	s, ok := Unify(a, b)
	require.True(t, ok)
	bound, ok := s.Lookup(x)
	require.True(t, ok)
	assert.True(t, bound.Equal(NewConstant("hello")))
}

func TestUnifySymmetric(t *testing.T) {
	x := NewUserVariable("X")
	y := NewUserVariable("Y")
	a := NewLiteral("p", x, NewConstant("a"))
	b := NewLiteral("p", NewConstant("a"), y)

	s1, ok1 := Unify(a, b)
	require.True(t, ok1)
	s2, ok2 := Unify(b, a)
	require.True(t, ok2)

	got1 := SubstituteLiteral(a, s1)
	got2 := SubstituteLiteral(b, s1)
	assert.True(t, got1.Equal(got2), "unify(a,b) must make a and b identical under the MGU")

	got1r := SubstituteLiteral(b, s2)
	got2r := SubstituteLiteral(a, s2)
	assert.True(t, got1r.Equal(got2r), "unify(b,a) must also make them identical")
}

func TestUnifyBothVariables(t *testing.T) {
	x := NewUserVariable("X")
	y := NewUserVariable("Y")
	a := NewLiteral("p", x)
	b := NewLiteral("p", y)
	s, ok := Unify(a, b)
	require.True(t, ok)
	assert.True(t, SubstituteTerm(x, s).Equal(SubstituteTerm(y, s)))
}

func TestUnifyOccursNoCheckJustBinds(t *testing.T) {
	// The spec explicitly calls for no occurs-check beyond what
	// unification itself rejects: binding a variable to itself across
	// two identical variable occurrences must be a no-op, not a failure.
	x := NewUserVariable("X")
	a := NewLiteral("p", x, x)
	b := NewLiteral("p", x, x)
	s, ok := Unify(a, b)
	require.True(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestComposeExtendMatchesSequentialSubstitution(t *testing.T) {
	x := NewUserVariable("X")
	y := NewUserVariable("Y")
	sigma := NewSubstitution().Bind(x, y)
	tau := NewSubstitution().Bind(y, NewConstant("z"))

	composed := ComposeExtend(sigma, tau)

	lit := NewLiteral("p", x)
	viaCompose := SubstituteLiteral(lit, composed)
	viaSequential := SubstituteLiteral(SubstituteLiteral(lit, sigma), tau)
	assert.True(t, viaCompose.Equal(viaSequential))
}

func TestComposeNoExtendDropsForeignBindings(t *testing.T) {
	x := NewUserVariable("X")
	y := NewUserVariable("Y")
	z := NewUserVariable("Z")
	sigma := NewSubstitution().Bind(x, y)
	tau := NewSubstitution().Bind(y, NewConstant("v")).Bind(z, NewConstant("unrelated"))

	composed := ComposeNoExtend(sigma, tau)
	_, hasZ := composed.Lookup(z)
	assert.False(t, hasZ, "ComposeNoExtend must not leak tau's own domain into the result")

	bound, ok := composed.Lookup(x)
	require.True(t, ok)
	assert.True(t, bound.Equal(NewConstant("v")))
}
