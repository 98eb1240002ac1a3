package scoring

import "strconv"

const (
	MinScore     = 0
	MaxScore     = 100
	DefaultScore = 50
)

// ParseScore reads the first run of ASCII digits in text and clamps it to [0,100].
// Text without digits scores 0.
func ParseScore(text string) int {
	start := -1
	end := len(text)
	for i := 0; i < len(text); i++ {
		isDigit := text[i] >= '0' && text[i] <= '9'
		if start < 0 && isDigit {
			start = i
		} else if start >= 0 && !isDigit {
			end = i
			break
		}
	}
	if start < 0 {
		return MinScore
	}

	digits := text[start:end]
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}
	// anything longer than three digits is past the ceiling and may overflow Atoi
	if len(digits) > 3 {
		return MaxScore
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return MinScore
	}
	return clamp(value)
}

func clamp(value int) int {
	if value < MinScore {
		return MinScore
	}
	if value > MaxScore {
		return MaxScore
	}
	return value
}
