package generic_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/labor-engine/generic"
)

func TestParseMoney(t *testing.T) {
	cases := map[string]generic.Money{
		"0":        0,
		"1412":     141200,
		"1412.00":  141200,
		"12,50":    1250,
		" 3000.5 ": 300050,
		"0.005":    1, // half away from zero
		"-10.00":   -1000,
	}
	for in, want := range cases {
		got, err := generic.ParseMoney(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := generic.ParseMoney("doze reais")
	assert.ErrorIs(t, err, generic.ErrInvalidInput)
}

func TestMoney_Arithmetic(t *testing.T) {
	salary := money("3000.00")

	assert.Equal(t, money("240.00"), salary.MulRate(generic.Rate("0.08")))
	assert.Equal(t, money("1250.00"), salary.Ratio(5, 12))
	assert.Equal(t, money("33.33"), money("100.00").DivInt(3))
	assert.Equal(t, money("0.03"), money("0.05").MulRate(generic.Rate("0.5")))
	assert.Equal(t, money("9000.00"), salary.MulInt(3))
	assert.Equal(t, generic.Money(0), money("-4.00").ClampZero())
	assert.Equal(t, money("6.00"), generic.Sum(money("1.00"), money("2.00"), money("3.00")))

	units, cents := money("1234.56").Split()
	assert.Equal(t, int64(1234), units)
	assert.Equal(t, int64(56), cents)
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.00", generic.Money(0).String())
	assert.Equal(t, "0.07", generic.Cents(7).String())
	assert.Equal(t, "1412.00", generic.Reais(1412).String())
	assert.Equal(t, "-1.50", generic.Cents(-150).String())
}

func TestMoney_JSON(t *testing.T) {
	type payload struct {
		Salary generic.Money `json:"salary"`
	}

	out, err := json.Marshal(payload{Salary: money("1234.56")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"salary": 1234.56}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"salary": "2500.10"}`), &in))
	assert.Equal(t, money("2500.10"), in.Salary)

	require.NoError(t, json.Unmarshal([]byte(`{"salary": 99.999}`), &in))
	assert.Equal(t, money("100.00"), in.Salary)

	assert.Error(t, json.Unmarshal([]byte(`{"salary": "abc"}`), &in))
}
