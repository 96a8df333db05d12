package tests

import (
	"math/rand"
	"time"
)

const phoneNoise = "0123456789 +-()8 abc"

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	Intn    func(n int) int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Intn:    random.Intn,
	}
}

// String случайная строка длины n из символов alphabet.
func (r Randomizer) String(n int, alphabet string) string {
	chars := []rune(alphabet)
	out := make([]rune, n)

	for i := range out {
		out[i] = chars[r.Intn(len(chars))]
	}

	return string(out)
}

// PhoneInput похож на то, что пользователи вводят в поле телефона:
// цифры вперемешку со скобками, пробелами и мусором.
func (r Randomizer) PhoneInput() string {
	return r.String(r.Intn(20), phoneNoise) //nolint:mnd // skip
}

// Digits случайная строка из n цифр.
func (r Randomizer) Digits(n int) string {
	return r.String(n, "0123456789")
}
