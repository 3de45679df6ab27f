package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
	mocks "github.com/dokusho-app/dokusho/internal/testing"
)

func completionBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
}

const articleJSON = `{"article":"Un texto sobre viajes.","vocabulary":[{"word":"viaje","meaning":"旅行"}]}`

func testClient(t *testing.T, rt http.RoundTripper) *Client {
	t.Helper()

	client, err := NewClient(ClientOpts{
		BaseURL:           "http://localhost:9999/v1",
		Model:             "test-model",
		APIKey:            "test-key",
		RequestsPerMinute: 6000, // effectively no throttling in tests
		HTTPClient:        &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestClientGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rt := &mocks.SequenceRoundTripper{
			Statuses: []int{http.StatusOK},
			Bodies:   []string{completionBody(articleJSON)},
		}
		client := testClient(t, rt)

		input, err := client.Generate(ctx, models.IdentityUser1, "viajes", "B1")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if input.Topic != "viajes" || input.Level != "B1" {
			t.Errorf("topic/level not carried through: %+v", input)
		}
		if input.Article != "Un texto sobre viajes." {
			t.Errorf("unexpected article: %q", input.Article)
		}
		if len(input.Vocabulary) != 1 || input.Vocabulary[0].Word != "viaje" {
			t.Errorf("unexpected vocabulary: %+v", input.Vocabulary)
		}
	})

	t.Run("UnwrapsCodeFences", func(t *testing.T) {
		fenced := "```json\n" + articleJSON + "\n```"
		rt := &mocks.SequenceRoundTripper{
			Statuses: []int{http.StatusOK},
			Bodies:   []string{completionBody(fenced)},
		}
		client := testClient(t, rt)

		input, err := client.Generate(ctx, models.IdentityUser1, "viajes", "B1")
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if input.Article == "" {
			t.Error("expected article parsed from fenced output")
		}
	})

	t.Run("MalformedModelOutput", func(t *testing.T) {
		rt := &mocks.SequenceRoundTripper{
			Statuses: []int{http.StatusOK},
			Bodies:   []string{completionBody("lo siento, no puedo")},
		}
		client := testClient(t, rt)

		_, err := client.Generate(ctx, models.IdentityUser1, "viajes", "B1")
		if !errors.Is(err, shared.ErrGenerationFailed) {
			t.Fatalf("expected ErrGenerationFailed, got %v", err)
		}
	})

	t.Run("ClientErrorFailsImmediately", func(t *testing.T) {
		rt := &mocks.SequenceRoundTripper{
			Statuses: []int{http.StatusBadRequest},
			Bodies:   []string{`{"error":"bad request"}`},
		}
		client := testClient(t, rt)

		_, err := client.Generate(ctx, models.IdentityUser1, "viajes", "B1")
		if !errors.Is(err, shared.ErrGenerationFailed) {
			t.Fatalf("expected ErrGenerationFailed, got %v", err)
		}
		if rt.Calls != 1 {
			t.Errorf("a 400 must not be retried, got %d calls", rt.Calls)
		}
	})

	t.Run("TransportErrorFailsImmediately", func(t *testing.T) {
		rt := mocks.NewMockRoundTripper(nil, errors.New("connection refused"))
		client := testClient(t, rt)

		_, err := client.Generate(ctx, models.IdentityUser1, "viajes", "B1")
		if !errors.Is(err, shared.ErrGenerationFailed) {
			t.Fatalf("expected ErrGenerationFailed, got %v", err)
		}
	})

	t.Run("RejectsEmptyTopic", func(t *testing.T) {
		client := testClient(t, &mocks.SequenceRoundTripper{Statuses: []int{http.StatusOK}})

		_, err := client.Generate(ctx, models.IdentityUser1, "", "B1")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

// The overload tests wait out the fixed retry backoff, so they take several
// seconds in total.
func TestClientGenerateOverload(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping retry backoff tests in short mode")
	}

	ctx := context.Background()

	t.Run("RecoversAfterRetries", func(t *testing.T) {
		rt := &mocks.SequenceRoundTripper{
			Statuses: []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK},
			Bodies:   []string{"", "", completionBody(articleJSON)},
		}
		client := testClient(t, rt)

		input, err := client.Generate(ctx, models.IdentityUser1, "viajes", "B1")
		if err != nil {
			t.Fatalf("expected recovery on third attempt, got %v", err)
		}
		if input.Article == "" {
			t.Error("expected parsed article after retries")
		}
		if rt.Calls != 3 {
			t.Errorf("expected 3 attempts, got %d", rt.Calls)
		}
	})

	t.Run("GivesUpAfterThreeAttempts", func(t *testing.T) {
		rt := &mocks.SequenceRoundTripper{
			Statuses: []int{http.StatusServiceUnavailable},
		}
		client := testClient(t, rt)

		_, err := client.Generate(ctx, models.IdentityUser1, "viajes", "B1")
		if !errors.Is(err, shared.ErrServiceOverloaded) {
			t.Fatalf("expected ErrServiceOverloaded, got %v", err)
		}
		if rt.Calls != 3 {
			t.Errorf("expected exactly 3 attempts, got %d", rt.Calls)
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	spanish := buildPrompt(models.TargetFor(models.IdentityUser1), "viajes", "B1")
	if want := "言語: スペイン語"; !strings.Contains(spanish, want) {
		t.Errorf("spanish prompt missing %q", want)
	}
	if !strings.Contains(spanish, "viajes") || !strings.Contains(spanish, "B1") {
		t.Error("spanish prompt missing topic or level")
	}

	japanese := buildPrompt(models.TargetFor(models.IdentityUser2), "旅行", "N4")
	if want := "言語: 日本語"; !strings.Contains(japanese, want) {
		t.Errorf("japanese prompt missing %q", want)
	}
	if want := `"reading"`; !strings.Contains(japanese, want) {
		t.Error("japanese prompt should request readings")
	}
}
