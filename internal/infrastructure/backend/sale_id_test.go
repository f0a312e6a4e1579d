package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaleIDOf(t *testing.T) {
	now := time.UnixMilli(1760000000000)

	assert.Equal(t, "42", saleIDOf([]byte(`{"id": 42}`), now))
	assert.Equal(t, "abc", saleIDOf([]byte(`{"data": {"sale_id": "abc"}}`), now))
	assert.Equal(t, "7.5", saleIDOf([]byte(`{"sale_id": 7.5}`), now))
	assert.Equal(t, "TXN-1760000000000", saleIDOf([]byte(`{"ok": true}`), now))
	assert.Equal(t, "TXN-1760000000000", saleIDOf([]byte(`not json`), now))
	assert.Equal(t, "TXN-1760000000000", saleIDOf(nil, now))
}
