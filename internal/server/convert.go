package server

import (
	"lead_relay/internal/domain/service/lead"
	"lead_relay/internal/domain/value"
	"lead_relay/pkg/lox"
	"lead_relay/pkg/rest"
)

func newSubmission(request rest.LeadRequest, clientIP string) lead.Submission {
	return lead.Submission{
		Name:        request.Name.String(),
		Phone:       request.Phone.String(),
		Company:     request.Company.String(),
		StartedAt:   request.StartedAt.Time(),
		QueryParams: lox.Map(request.QueryParams, newQueryParam),
		ClientIP:    clientIP,
	}
}

func newQueryParam(p rest.Param) value.QueryParam {
	return value.QueryParam{Key: p.Key, Value: p.Value}
}
