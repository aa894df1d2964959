package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portfolio/internal/errors"
)

func TestBool_Unmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Bool
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`"false"`, false},
		{`"yes"`, false},
		{`"TRUE"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var in PostInput
			require.NoError(t, json.Unmarshal([]byte(`{"isFeatured":`+tt.in+`}`), &in))
			assert.Equal(t, tt.want, in.IsFeatured)
		})
	}
}

func TestBool_RejectsNumbersWithFieldName(t *testing.T) {
	var in PostInput
	err := json.Unmarshal([]byte(`{"isFeatured":1}`), &in)

	var typeErr *json.UnmarshalTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "isFeatured", typeErr.Field)
}

func TestTags_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Tags
	}{
		{"comma string", `"a, b ,c"`, Tags{"a", "b", "c"}},
		{"list unchanged", `["a","b"]`, Tags{"a", "b"}},
		{"list trimmed", `[" a ","", "b"]`, Tags{"a", "b"}},
		{"empty string", `""`, Tags{}},
		{"only separators", `" , ,"`, Tags{}},
		{"number", `42`, Tags{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in PostInput
			require.NoError(t, json.Unmarshal([]byte(`{"tags":`+tt.in+`}`), &in))
			assert.Equal(t, tt.want, in.Tags)
		})
	}
}

func TestTags_RejectsNonStringElements(t *testing.T) {
	var in PostInput
	err := json.Unmarshal([]byte(`{"tags":[1,2]}`), &in)

	var typeErr *json.UnmarshalTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "tags", typeErr.Field)
}

func TestPatch_AbsentFieldsStayNil(t *testing.T) {
	var p PostPatch
	require.NoError(t, json.Unmarshal([]byte(`{"content":"<p>x</p>"}`), &p))

	assert.Nil(t, p.Title)
	assert.Nil(t, p.IsFeatured)
	assert.Nil(t, p.Tags)
	require.NotNil(t, p.Content)
	assert.Equal(t, "<p>x</p>", *p.Content)
}

func TestValidate_PostInput(t *testing.T) {
	v := New()

	err := Translate(v.Struct(&PostInput{Title: "Hi", Content: ""}))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 2)
	assert.Equal(t, apperrors.FieldError{Field: "title", Message: "must be at least 3 characters"}, verr.Errors[0])
	assert.Equal(t, apperrors.FieldError{Field: "content", Message: "is required"}, verr.Errors[1])

	assert.NoError(t, Translate(v.Struct(&PostInput{Title: "Hello", Content: "x"})))
}

func TestValidate_Patches(t *testing.T) {
	v := New()

	assert.NoError(t, Translate(v.Struct(&PostPatch{})), "empty patch is valid")

	short := "ab"
	err := Translate(v.Struct(&PostPatch{Title: &short}))
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Errors[0].Field)

	bad := "not a url"
	err = Translate(v.Struct(&ProjectPatch{LiveURL: &bad}))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, apperrors.FieldError{Field: "liveUrl", Message: "must be a valid URL"}, verr.Errors[0])

	good := "https://example.com/demo"
	assert.NoError(t, Translate(v.Struct(&ProjectInput{Title: "Demo", Content: "x", RepoURL: &good})))
}

func TestValidate_LoginLeavesCredentialsToLogin(t *testing.T) {
	v := New()

	assert.NoError(t, Translate(v.Struct(&LoginInput{Email: "nope", Password: ""})))
	assert.NoError(t, Translate(v.Struct(&LoginInput{})))
}

func TestTranslate_PassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	assert.Equal(t, boom, Translate(boom))
	assert.NoError(t, Translate(nil))
}
