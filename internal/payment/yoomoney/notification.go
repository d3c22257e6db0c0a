package yoomoney

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
)

// LabelPrefix marks labels carrying one of our registration ids. Labels are
// round-tripped through YooMoney untouched, so the prefix is the only thing
// tying a notification back to a registration.
const LabelPrefix = "reg_"

var ErrInvalidHash = errors.New("invalid hash")

// Notification is a single payment notification exactly as YooMoney posts
// it, one application/x-www-form-urlencoded body per operation. All fields
// stay strings: they take part in the signature byte for byte and must never
// be normalized before the hash check.
type Notification struct {
	NotificationType string
	OperationID      string
	Amount           string
	Currency         string
	Datetime         string
	Sender           string
	Codepro          string
	Label            string
	SHA1Hash         string
	Unaccepted       string
}

// ParseNotification reads the decoded form. An absent field becomes the
// empty string, which is also what the YooMoney reference signer feeds into
// the hash for an omitted label. Fields are not validated here; a
// notification that cannot authenticate is rejected by Verify.
func ParseNotification(form url.Values) Notification {
	return Notification{
		NotificationType: form.Get("notification_type"),
		OperationID:      form.Get("operation_id"),
		Amount:           form.Get("amount"),
		Currency:         form.Get("currency"),
		Datetime:         form.Get("datetime"),
		Sender:           form.Get("sender"),
		Codepro:          form.Get("codepro"),
		Label:            form.Get("label"),
		SHA1Hash:         form.Get("sha1_hash"),
		Unaccepted:       form.Get("unaccepted"),
	}
}

// signString concatenates the fields in the order fixed by the YooMoney
// protocol, with the shared secret between codepro and label.
func (n Notification) signString(secret string) string {
	return strings.Join([]string{
		n.NotificationType,
		n.OperationID,
		n.Amount,
		n.Currency,
		n.Datetime,
		n.Sender,
		n.Codepro,
		secret,
		n.Label,
	}, "&")
}

// Verify recomputes the SHA-1 over the documented field order and compares
// it to sha1_hash. Any mismatch, including a missing sha1_hash, reads as a
// forged notification.
func (n Notification) Verify(secret string) error {
	sum := sha1.Sum([]byte(n.signString(secret)))
	calculated := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(calculated), []byte(n.SHA1Hash)) != 1 {
		return ErrInvalidHash
	}

	return nil
}

// RegistrationID strips the label prefix and returns the correlation token.
// The second return is false for unlabeled notifications, which are none of
// our business and must be acked without acting.
func (n Notification) RegistrationID() (string, bool) {
	if n.Label == "" {
		return "", false
	}

	return strings.TrimPrefix(n.Label, LabelPrefix), true
}
