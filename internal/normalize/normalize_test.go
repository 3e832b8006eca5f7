package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "bare array", raw: `[{"id":1},{"id":2}]`, want: 2},
		{name: "data envelope", raw: `{"data":[{"id":1}]}`, want: 1},
		{name: "result envelope", raw: `{"result":[1,2,3]}`, want: 3},
		{name: "items envelope", raw: `{"items":[{}]}`, want: 1},
		{name: "records envelope", raw: `{"records":[{},{}]}`, want: 2},
		{name: "first array property", raw: `{"total":2,"slots":[{},{}],"other":[{}]}`, want: 2},
		{name: "single object", raw: `{"id":1}`, want: 0},
		{name: "empty body", raw: ``, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "invalid json", raw: `{oops`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ExtractArray([]byte(tt.raw)), tt.want)
		})
	}
}

func TestExtractArray_DocumentOrder(t *testing.T) {
	got := ExtractArray([]byte(`{"zeta":["z"],"alpha":["a","b"]}`))
	require.Len(t, got, 1)
	assert.Equal(t, "z", got[0])
}

func TestRecords_SkipsScalars(t *testing.T) {
	recs := Records([]byte(`[{"id":1}, 3, "x", {"id":2}]`))
	require.Len(t, recs, 2)
	assert.Equal(t, int64(2), recs[1].Int("id"))
}

func TestObject(t *testing.T) {
	r, ok := Object([]byte(`[{"id":9}]`))
	require.True(t, ok)
	assert.Equal(t, int64(9), r.Int("id"))

	_, ok = Object([]byte(`"nope"`))
	assert.False(t, ok)
}

func TestRecordPickers(t *testing.T) {
	r, ok := Object([]byte(`{
		"name": null,
		"nombre": "Catering Verde",
		"price": "15000",
		"rating": 4.5,
		"id": 12,
		"state": 1,
		"active": "true"
	}`))
	require.True(t, ok)

	assert.Equal(t, "Catering Verde", r.Str("name", "nombre"))
	assert.Equal(t, 15000.0, r.Float("price", "precio"))
	assert.Equal(t, 4.5, r.Float("rating"))
	assert.Equal(t, int64(12), r.Int("id"))
	assert.Equal(t, "12", r.Str("id"))
	assert.True(t, r.Bool(false, "state"))
	assert.True(t, r.Bool(false, "active"))
	assert.False(t, r.Bool(false, "missing"))
	assert.True(t, r.Bool(true, "missing"))
	assert.False(t, r.Has("name"))
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(json.Number("1")))
	assert.True(t, Truthy("TRUE"))
	assert.False(t, Truthy(json.Number("0")))
	assert.False(t, Truthy(json.Number("2")))
	assert.False(t, Truthy("yes"))
	assert.False(t, Truthy(nil))
}

func TestLookup(t *testing.T) {
	v, err := Decode([]byte(`{"data":{"token":"abc"},"list":[{"authToken":"xyz"}]}`))
	require.NoError(t, err)

	got, ok := Lookup(v, "data", "token")
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	got, ok = Lookup(v, "list", "0", "authToken")
	assert.True(t, ok)
	assert.Equal(t, "xyz", got)

	_, ok = Lookup(v, "list", "3")
	assert.False(t, ok)
	_, ok = Lookup(v, "data", "token", "deeper")
	assert.False(t, ok)
}

func TestImageURLs(t *testing.T) {
	const base = "https://files.example"
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "relative string", raw: `"/vault/a.png"`, want: []string{base + "/vault/a.png"}},
		{name: "absolute string", raw: `"https://cdn.example/a.png"`, want: []string{"https://cdn.example/a.png"}},
		{name: "protocol relative", raw: `"//cdn.example/a.png"`, want: []string{"https://cdn.example/a.png"}},
		{name: "object path", raw: `{"path":"/vault/b.jpg","name":"b.jpg"}`, want: []string{base + "/vault/b.jpg"}},
		{name: "object nested file", raw: `{"file":{"url":"https://cdn.example/c.jpg"}}`, want: []string{"https://cdn.example/c.jpg"}},
		{
			name: "array mixed with duplicates",
			raw:  `["/vault/a.png", {"url":"/vault/a.png"}, {"file_url":"https://cdn.example/d.png"}, null, {}]`,
			want: []string{base + "/vault/a.png", "https://cdn.example/d.png"},
		},
		{name: "json encoded string", raw: `"[{\"path\":\"/vault/e.png\"}]"`, want: []string{base + "/vault/e.png"}},
		{name: "empty", raw: `""`, want: []string{}},
		{name: "number", raw: `5`, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ImageURLs(v, base))
		})
	}
}

func TestAvailability(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantLabel string
		wantFlag  *bool
	}{
		{name: "nil", in: nil, wantLabel: "", wantFlag: nil},
		{name: "disponible text", in: "Disponible", wantLabel: "Disponible", wantFlag: boolPtr(true)},
		{name: "no disponible text", in: "No disponible", wantLabel: "No disponible", wantFlag: boolPtr(false)},
		{name: "true text", in: "true", wantLabel: "true", wantFlag: boolPtr(true)},
		{name: "false text", in: "false", wantLabel: "false", wantFlag: boolPtr(false)},
		{name: "free text", in: "Fines de semana", wantLabel: "Fines de semana", wantFlag: nil},
		{name: "bool", in: false, wantLabel: "No disponible", wantFlag: boolPtr(false)},
		{name: "number", in: json.Number("1"), wantLabel: "Disponible", wantFlag: boolPtr(true)},
		{name: "zero", in: json.Number("0"), wantLabel: "No disponible", wantFlag: boolPtr(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, flag := Availability(tt.in)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantFlag, flag)
		})
	}
}

func TestPaymentStatus(t *testing.T) {
	estado, status, ok := PaymentStatus("Approved")
	assert.True(t, ok)
	assert.Equal(t, "aprobado", estado)
	assert.Equal(t, "approved", status)

	estado, status, ok = PaymentStatus("rechazado")
	assert.True(t, ok)
	assert.Equal(t, "rechazado", estado)
	assert.Equal(t, "rejected", status)

	_, _, ok = PaymentStatus("refunded")
	assert.False(t, ok)
}

func TestUserState(t *testing.T) {
	missing, _ := Object([]byte(`{"id":1}`))
	assert.True(t, UserState(missing))

	disabled, _ := Object([]byte(`{"state":false}`))
	assert.False(t, UserState(disabled))

	numeric, _ := Object([]byte(`{"state":1}`))
	assert.True(t, UserState(numeric))

	text, _ := Object([]byte(`{"state":"false"}`))
	assert.False(t, UserState(text))
}

func TestGuessImageMime(t *testing.T) {
	assert.Equal(t, "image/png", GuessImageMime("a.PNG"))
	assert.Equal(t, "image/jpeg", GuessImageMime("photo.jpeg"))
	assert.Equal(t, "image/webp", GuessImageMime("x.webp"))
	assert.Equal(t, "image/jpeg", GuessImageMime("noext"))
}

func TestIsNumericID(t *testing.T) {
	assert.True(t, IsNumericID("42"))
	assert.False(t, IsNumericID("abc"))
	assert.False(t, IsNumericID("0"))
	assert.False(t, IsNumericID(""))
}
