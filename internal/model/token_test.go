package model

import (
	"errors"
	"testing"
	"time"
)

type fixedSource struct {
	code Code
	err  error
}

func (f fixedSource) CurrentCode(time.Time) (Code, error) {
	return f.code, f.err
}

func TestTokenKind_IsTimeBased(t *testing.T) {
	tests := []struct {
		kind     TokenKind
		expected bool
	}{
		{TokenKindTOTP, true},
		{TokenKindHOTP, false},
		{TokenKind(""), false},
	}

	for _, test := range tests {
		result := test.kind.IsTimeBased()
		if result != test.expected {
			t.Errorf("TokenKind(%s).IsTimeBased() = %v, expected %v", test.kind, result, test.expected)
		}
	}
}

func TestCode_Valid(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		code     Code
		expected bool
	}{
		{"empty value", Code{}, false},
		{"open window", Code{Value: "123456"}, true},
		{"inside window", Code{Value: "123456", From: now.Add(-time.Second), Until: now.Add(time.Second)}, true},
		{"not yet valid", Code{Value: "123456", From: now.Add(time.Second)}, false},
		{"expired", Code{Value: "123456", Until: now}, false},
	}

	for _, test := range tests {
		if result := test.code.Valid(now); result != test.expected {
			t.Errorf("%s: Valid() = %v, expected %v", test.name, result, test.expected)
		}
	}
}

func TestToken_CurrentCode(t *testing.T) {
	now := time.Now()

	var nilToken *Token
	if _, ok := nilToken.CurrentCode(now); ok {
		t.Error("nil token should not produce a code")
	}

	noSource := &Token{ID: "a"}
	if _, ok := noSource.CurrentCode(now); ok {
		t.Error("token without a code source should not produce a code")
	}

	failing := &Token{ID: "b", Codes: fixedSource{err: errors.New("boom")}}
	if _, ok := failing.CurrentCode(now); ok {
		t.Error("failing code source should not produce a code")
	}

	working := &Token{ID: "c", Codes: fixedSource{code: Code{Value: "654321"}}}
	code, ok := working.CurrentCode(now)
	if !ok || code.Value != "654321" {
		t.Errorf("CurrentCode() = %+v, %v, expected 654321, true", code, ok)
	}
}

func TestToken_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		token    Token
		expected string
	}{
		{Token{ID: "1", Issuer: "GitHub", Label: "octocat"}, "GitHub"},
		{Token{ID: "2", Issuer: "  ", Label: "octocat"}, "octocat"},
		{Token{ID: "3"}, "3"},
	}

	for _, test := range tests {
		if result := test.token.GetDisplayTitle(); result != test.expected {
			t.Errorf("GetDisplayTitle() for %+v = %q, expected %q", test.token, result, test.expected)
		}
	}
}
