package ingest

var romanValues = map[rune]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

var romanDigits = []struct {
	value int
	text  string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// parseRoman parses an uppercase roman numeral in canonical form: "XIV"
// parses, "IIII" or "VX" do not.
func parseRoman(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	total, prev := 0, 0
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		v, ok := romanValues[runes[i]]
		if !ok {
			return 0, false
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	if total <= 0 || total >= 4000 || formatRoman(total) != s {
		return 0, false
	}
	return total, true
}

func formatRoman(n int) string {
	var b []byte
	for _, d := range romanDigits {
		for n >= d.value {
			b = append(b, d.text...)
			n -= d.value
		}
	}
	return string(b)
}
