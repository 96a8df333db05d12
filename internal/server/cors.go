package server

import (
	"net/http"
	"strconv"
)

const (
	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = 86400
	anyOrigin        = "*"
)

// OriginPolicy список сайтов, с которых принимаются заявки. Совпадение
// точное, "*" разрешает любой непустой Origin.
type OriginPolicy struct {
	allowed  map[string]struct{}
	allowAny bool
}

func NewOriginPolicy(origins []string) OriginPolicy {
	p := OriginPolicy{allowed: make(map[string]struct{}, len(origins))}

	for _, o := range origins {
		if o == anyOrigin {
			p.allowAny = true
			continue
		}

		p.allowed[o] = struct{}{}
	}

	return p
}

func (p OriginPolicy) Configured() bool {
	return p.allowAny || len(p.allowed) > 0
}

func (p OriginPolicy) Allowed(origin string) bool {
	if origin == "" {
		return false
	}

	if p.allowAny {
		return true
	}

	_, ok := p.allowed[origin]

	return ok
}

// setCORSHeaders Allow-Origin только для разрешённого источника, остальное всегда.
func setCORSHeaders(h http.Header, origin string, allowed bool) {
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))
	h.Add("Vary", "Origin")

	if allowed {
		h.Set("Access-Control-Allow-Origin", origin)
	}
}
