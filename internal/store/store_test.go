package store_test

import (
	"context"
	"errors"
	"testing"

	"puzzle-service/internal/infra/memory"
	"puzzle-service/internal/store"
)

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  Aviv ":      "aviv",
		"YUVAL  Cohen": "yuval cohen",
		"אביב":         "אביב",
		"":             "",
	}
	for in, want := range cases {
		if got := store.NormalizeName(in); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCredentialsPrefersStoredValue(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	creds := store.Credentials{KV: kv, Fallback: "from-config"}

	got, err := creds.Credential(ctx)
	if err != nil || got != "from-config" {
		t.Fatalf("expected fallback, got %q err=%v", got, err)
	}

	if err := kv.Set(ctx, store.CredentialKey, " stored "); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err = creds.Credential(ctx)
	if err != nil || got != "stored" {
		t.Fatalf("expected stored credential, got %q err=%v", got, err)
	}
}

func TestCredentialsStoreFailure(t *testing.T) {
	creds := store.Credentials{KV: failingKV{}, Fallback: ""}
	got, err := creds.Credential(context.Background())
	if err == nil {
		t.Fatalf("expected store error")
	}
	if got != "" {
		t.Fatalf("expected empty credential, got %q", got)
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (failingKV) Set(context.Context, string, string) error  { return errors.New("down") }
func (failingKV) Delete(context.Context, string) error       { return errors.New("down") }
