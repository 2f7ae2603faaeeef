package core_test

import (
	"testing"

	"github.com/leapstack-labs/nail/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		value core.Value
		want  string
		ty    core.Ty
	}{
		{"str", core.Str("Neo"), `"Neo"`, core.TyStr},
		{"empty str", core.Str(""), `""`, core.TyStr},
		{"int", core.Int(-42), "-42", core.TyInt},
		{"float", core.Float(1.5), "1.5", core.TyFloat},
		{"float shortest", core.Float(0.1), "0.1", core.TyFloat},
		{"float large", core.Float(1e10), "10000000000", core.TyFloat},
		{"float small", core.Float(0.0000001), "0.0000001", core.TyFloat},
		{"bool", core.Bool(true), "true", core.TyBool},
		{"nil", core.Nil{}, "nil", core.TyNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
			assert.Equal(t, tt.ty, tt.value.Ty())
		})
	}
}

func TestTyDeclarable(t *testing.T) {
	for _, ty := range []core.Ty{core.TyStr, core.TyInt, core.TyFloat, core.TyBool} {
		assert.True(t, ty.Declarable(), ty.String())
	}
	assert.False(t, core.TyNil.Declarable())
	assert.Equal(t, "nil", core.TyNil.String())
}

func TestIsNil(t *testing.T) {
	assert.True(t, core.IsNil(core.Nil{}))
	assert.False(t, core.IsNil(core.Int(0)))
	assert.False(t, core.IsNil(core.Str("")))
}
