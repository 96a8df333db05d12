package value

import "strings"

const (
	MaxQueryParams      = 15
	MaxQueryKeyLength   = 64
	MaxQueryValueLength = 200
)

// QueryParam пара ключ-значение из адреса страницы с формой (utm-метки и т.п.).
type QueryParam struct {
	Key   string
	Value string
}

// QueryParams упорядоченный набор параметров; порядок важен для текста заявки.
type QueryParams []QueryParam

// SanitizeQueryParams берёт не больше 15 первых пар, чистит ключи и значения
// и отбрасывает пустые. Повторный ключ перезаписывает значение на прежнем месте.
func SanitizeQueryParams(raw []QueryParam) QueryParams {
	if len(raw) > MaxQueryParams {
		raw = raw[:MaxQueryParams]
	}

	out := make(QueryParams, 0, len(raw))
	index := make(map[string]int, len(raw))

	for _, p := range raw {
		key := TruncateRunes(cleanQueryKey(p.Key), MaxQueryKeyLength)
		val := TruncateRunes(SanitizeText(p.Value), MaxQueryValueLength)

		if key == "" || val == "" {
			continue
		}

		if i, ok := index[key]; ok {
			out[i].Value = val
			continue
		}

		index[key] = len(out)
		out = append(out, QueryParam{Key: key, Value: val})
	}

	return out
}

func (q QueryParams) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}

	return "", false
}

// cleanQueryKey оставляет только [A-Za-z0-9_-.:].
func cleanQueryKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '-', r == '.', r == ':':
			return r
		default:
			return -1
		}
	}, key)
}
