package yoomoney

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cr3t"

func signHex(secret string, n Notification) string {
	sum := sha1.Sum([]byte(n.signString(secret)))
	return hex.EncodeToString(sum[:])
}

func validNotification() Notification {
	n := Notification{
		NotificationType: "p2p-incoming",
		OperationID:      "1234567",
		Amount:           "300.00",
		Currency:         "643",
		Datetime:         "2024-05-17T12:00:00Z",
		Sender:           "41001000040035",
		Codepro:          "false",
		Label:            "reg_0196fa00-1111-7000-8000-000000000042",
	}
	n.SHA1Hash = signHex(testSecret, n)
	return n
}

func TestVerify_OK(t *testing.T) {
	n := validNotification()

	require.NoError(t, n.Verify(testSecret))
}

func TestVerify_KnownVector(t *testing.T) {
	// SHA-1("p2p&123&500.00&643&2024-01-01T00:00:00Z&41001&false&s3cr3t&reg_42")
	n := Notification{
		NotificationType: "p2p",
		OperationID:      "123",
		Amount:           "500.00",
		Currency:         "643",
		Datetime:         "2024-01-01T00:00:00Z",
		Sender:           "41001",
		Codepro:          "false",
		Label:            "reg_42",
		SHA1Hash:         "5f79ae4c25aca735edd459b1be098f068d3f460e",
	}

	require.NoError(t, n.Verify(testSecret))
}

func TestVerify_TamperedHash(t *testing.T) {
	n := validNotification()

	// Flip one character of the supplied hash.
	hash := []byte(n.SHA1Hash)
	if hash[0] == 'a' {
		hash[0] = 'b'
	} else {
		hash[0] = 'a'
	}
	n.SHA1Hash = string(hash)

	assert.ErrorIs(t, n.Verify(testSecret), ErrInvalidHash)
}

func TestVerify_TamperedAmount(t *testing.T) {
	n := validNotification()
	n.Amount = "9999.00"

	assert.ErrorIs(t, n.Verify(testSecret), ErrInvalidHash)
}

func TestVerify_WrongSecret(t *testing.T) {
	n := validNotification()

	assert.ErrorIs(t, n.Verify("another-secret"), ErrInvalidHash)
}

func TestVerify_MissingHash(t *testing.T) {
	n := validNotification()
	n.SHA1Hash = ""

	assert.ErrorIs(t, n.Verify(testSecret), ErrInvalidHash)
}

func TestVerify_UppercaseHashRejected(t *testing.T) {
	// The comparison is case-sensitive: the processor sends lowercase hex.
	n := validNotification()
	n.SHA1Hash = "5F79AE4C25ACA735EDD459B1BE098F068D3F460E"

	assert.ErrorIs(t, n.Verify(testSecret), ErrInvalidHash)
}

func TestParseNotification(t *testing.T) {
	form := url.Values{}
	form.Set("notification_type", "p2p-incoming")
	form.Set("operation_id", "42")
	form.Set("amount", "500.00")
	form.Set("currency", "643")
	form.Set("datetime", "2024-01-01T00:00:00Z")
	form.Set("sender", "41001")
	form.Set("codepro", "false")
	form.Set("label", "reg_abc")
	form.Set("sha1_hash", "deadbeef")
	form.Set("unaccepted", "false")

	n := ParseNotification(form)

	assert.Equal(t, "p2p-incoming", n.NotificationType)
	assert.Equal(t, "42", n.OperationID)
	assert.Equal(t, "500.00", n.Amount)
	assert.Equal(t, "reg_abc", n.Label)
	assert.Equal(t, "deadbeef", n.SHA1Hash)
	assert.Equal(t, "false", n.Unaccepted)
}

func TestParseNotification_AbsentFieldsStayEmpty(t *testing.T) {
	form := url.Values{}
	form.Set("notification_type", "p2p-incoming")

	n := ParseNotification(form)

	assert.Empty(t, n.Label)
	assert.Empty(t, n.SHA1Hash)

	// An omitted label signs as the empty string, same as the reference
	// signer does.
	assert.Equal(t, "p2p-incoming&&&&&&&secret&", n.signString("secret"))
}

func TestRegistrationID(t *testing.T) {
	n := Notification{Label: "reg_42"}
	id, ok := n.RegistrationID()

	require.True(t, ok)
	assert.Equal(t, "42", id)
}

func TestRegistrationID_NoLabel(t *testing.T) {
	n := Notification{}
	_, ok := n.RegistrationID()

	assert.False(t, ok)
}

func TestRegistrationID_ForeignLabelPassedThrough(t *testing.T) {
	// Labels without our prefix are returned as-is; they will simply match
	// no registration row.
	n := Notification{Label: "order-77"}
	id, ok := n.RegistrationID()

	require.True(t, ok)
	assert.Equal(t, "order-77", id)
}
