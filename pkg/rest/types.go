// Package rest описывает тела запросов формы заявки. Декодирование намеренно
// снисходительное: форма на старых страницах присылает числа строками и
// наоборот, поэтому поле неверного типа становится пустым, а не ломает запрос.
package rest

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// LeadRequest тело POST-запроса формы.
type LeadRequest struct {
	Name        LooseString   `json:"name"`
	Phone       LooseString   `json:"phone"`
	Company     LooseString   `json:"company"`
	StartedAt   Timestamp     `json:"startedAt"`
	QueryParams OrderedParams `json:"queryParams"`
}

// LooseString принимает строку, число или true; остальное (null, false, 0,
// объекты, массивы) читается как пустая строка.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	*s = LooseString(looseString(b))
	return nil
}

func (s LooseString) String() string {
	return string(s)
}

// Timestamp unix-время в миллисекундах: число или строка с числом.
// Всё, что не читается как положительное конечное число, означает отсутствие метки.
type Timestamp float64

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	var ms float64

	switch {
	case len(b) == 0:
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			ms = parseNumber(s)
		}
	case b[0] == 't':
		ms = 1
	default:
		ms = parseNumber(string(b))
	}

	*t = Timestamp(ms)

	return nil
}

// Time нулевое значение, если метки нет.
func (t Timestamp) Time() time.Time {
	ms := float64(t)
	if ms <= 0 || math.IsNaN(ms) || math.IsInf(ms, 0) || ms > math.MaxInt64/2 {
		return time.Time{}
	}

	return time.UnixMilli(int64(ms))
}

type Param struct {
	Key   string
	Value string
}

// OrderedParams JSON-объект с сохранением порядка ключей. Повторный ключ
// заменяет значение на месте первого вхождения. Не-объект читается как пустой набор.
type OrderedParams []Param

func (p *OrderedParams) UnmarshalJSON(b []byte) error {
	*p = nil

	iter := jsoniter.ParseBytes(json, b)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil
	}

	var out OrderedParams

	index := make(map[string]int)

	iter.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
		val := looseString(it.SkipAndReturnBytes())

		if i, ok := index[key]; ok {
			out[i].Value = val
			return true
		}

		index[key] = len(out)
		out = append(out, Param{Key: key, Value: val})

		return true
	})

	if iter.Error != nil {
		return nil //nolint:nilerr // broken object reads as empty
	}

	*p = out

	return nil
}

// MarshalJSON пишет объект в исходном порядке ключей.
func (p OrderedParams) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	stream.WriteObjectStart()

	for i, param := range p {
		if i > 0 {
			stream.WriteMore()
		}

		stream.WriteObjectField(param.Key)
		stream.WriteString(param.Value)
	}

	stream.WriteObjectEnd()

	if stream.Error != nil {
		return nil, fmt.Errorf("stream.WriteObject: %w", stream.Error)
	}

	return append([]byte(nil), stream.Buffer()...), nil
}

func looseString(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ""
		}

		return s
	case 't':
		return "true"
	case 'f', 'n', '{', '[':
		return ""
	default:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil || f == 0 {
			return ""
		}

		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}
