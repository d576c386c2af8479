package payment

// ValidateCard reports whether cardNumber passes the Luhn checksum. Starting
// from the rightmost digit, every second digit is doubled (minus 9 when the
// result exceeds 9) and the sum of all digits must be divisible by 10.
func ValidateCard(cardNumber string) bool {
	var sum int
	double := false

	for i := len(cardNumber) - 1; i >= 0; i-- {
		c := cardNumber[i]
		if c < '0' || c > '9' {
			return false
		}

		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		double = !double
	}

	return sum%10 == 0
}

func isCardNumberFormat(cardNumber string) bool {
	if len(cardNumber) != 16 {
		return false
	}
	for i := 0; i < len(cardNumber); i++ {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
	}
	return true
}

// maskCardNumber keeps the last four digits for logging.
func maskCardNumber(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return "****"
	}
	return "************" + cardNumber[len(cardNumber)-4:]
}
