package usecase

import (
	"fmt"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ステータスとクライアント向けメッセージ
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// 実時刻
var SystemClock Clock = systemClock{}

// nilは空文字で保存
func newAuditLog(actor string, action model.AuditAction, rt model.AuditResourceType, resourceID string, before, after interface{}, now time.Time) (model.AuditLog, error) {
	b, err := marshalAudit(before)
	if err != nil {
		return model.AuditLog{}, err
	}
	a, err := marshalAudit(after)
	if err != nil {
		return model.AuditLog{}, err
	}
	return model.AuditLog{
		ActorEmail:   actor,
		Action:       action,
		ResourceType: rt,
		ResourceID:   resourceID,
		BeforeJSON:   b,
		AfterJSON:    a,
		CreatedAt:    now,
	}, nil
}

func marshalAudit(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "marshal audit state")
	}
	return string(raw), nil
}
