/*
Package words spells monetary amounts in Portuguese for legal documents.

PURPOSE:
  Receipts, rescission terms and vacation notices print every amount twice:
  as digits and "por extenso". This package produces the second form.

RULES:
  - Groups of three digits: unidades, mil, milhões, bilhões, up to quintilhões
  - "cem" for exactly 100, "cento" otherwise; "mil" never takes "um"
  - "e" joins hundreds, tens and units inside a group, and joins the last
    group when it is below 100 or a round hundred ("mil e quinhentos")
  - "um real" / "dois reais"; "um centavo" / "dois centavos"
  - "de reais" after an exact million, billion or trillion
  - zero is "zero reais"; zero cents omit the cents clause entirely;
    an amount below one real is spelled in cents only

EXAMPLE:
  words.AmountToWords(generic.MustParseMoney("1000000.50"))
  // "um milhão de reais e cinquenta centavos"
*/
package words

import (
	"strings"

	"github.com/warp/labor-engine/generic"
)

var units = [...]string{
	"zero", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove",
	"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove",
}

var tens = [...]string{
	"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa",
}

var hundreds = [...]string{
	"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos",
	"seiscentos", "setecentos", "oitocentos", "novecentos",
}

type scale struct {
	singular, plural string
}

// Index 0 is the units group, 1 is thousands.
var scales = [...]scale{
	{"", ""},
	{"mil", "mil"},
	{"milhão", "milhões"},
	{"bilhão", "bilhões"},
	{"trilhão", "trilhões"},
	{"quatrilhão", "quatrilhões"},
	{"quintilhão", "quintilhões"},
}

// AmountToWords spells a non-negative amount in reais and centavos.
func AmountToWords(m generic.Money) (string, error) {
	if err := generic.RequireNonNegative("amount", m); err != nil {
		return "", err
	}
	reais, cents := m.Split()

	if reais == 0 && cents == 0 {
		return "zero reais", nil
	}

	var parts []string
	if reais > 0 {
		parts = append(parts, IntegerToWords(reais)+" "+currencyNoun(reais))
	}
	if cents > 0 {
		noun := "centavos"
		if cents == 1 {
			noun = "centavo"
		}
		parts = append(parts, IntegerToWords(cents)+" "+noun)
	}
	return strings.Join(parts, " e "), nil
}

func currencyNoun(reais int64) string {
	switch {
	case reais == 1:
		return "real"
	case reais >= 1_000_000 && reais%1_000_000 == 0:
		return "de reais"
	default:
		return "reais"
	}
}

// IntegerToWords spells a non-negative integer (masculine forms).
// Negative values are spelled with a leading "menos".
func IntegerToWords(n int64) string {
	if n == 0 {
		return units[0]
	}
	if n < 0 {
		return "menos " + IntegerToWords(-n)
	}

	var groups []int
	for v := n; v > 0; v /= 1000 {
		groups = append(groups, int(v%1000))
	}
	lowest := 0
	for lowest < len(groups) && groups[lowest] == 0 {
		lowest++
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		if b.Len() > 0 {
			if i == lowest && (g < 100 || g%100 == 0) {
				b.WriteString(" e ")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(groupWords(g, i))
	}
	return b.String()
}

func groupWords(g, scaleIdx int) string {
	switch scaleIdx {
	case 0:
		return hundredsWords(g)
	case 1:
		if g == 1 {
			return "mil"
		}
		return hundredsWords(g) + " mil"
	default:
		s := scales[scaleIdx]
		if g == 1 {
			return "um " + s.singular
		}
		return hundredsWords(g) + " " + s.plural
	}
}

// hundredsWords spells 1..999.
func hundredsWords(n int) string {
	if n == 100 {
		return "cem"
	}
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
	}
	r := n % 100
	switch {
	case r == 0:
	case r < 20:
		parts = append(parts, units[r])
	default:
		parts = append(parts, tens[r/10])
		if r%10 > 0 {
			parts = append(parts, units[r%10])
		}
	}
	return strings.Join(parts, " e ")
}
