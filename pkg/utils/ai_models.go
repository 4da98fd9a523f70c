package utils

import (
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// Fallback sequences per provider. The operator-preferred model is prepended
// by ModelCandidates; these lists only change when the provider retires
// identifiers.
var (
	geminiFallbackModels = []string{
		"gemini-2.0-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
	openAIFallbackModels = []string{
		openai.GPT4oMini,
		openai.GPT4o,
		openai.GPT3Dot5Turbo,
	}
)

// Retry schedule for retryable failures on one model. Fixed and bounded;
// the caller's context deadline is the only other cancellation mechanism.
var retryBackoff = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// ModelCandidates builds the ordered candidate list: the preferred model
// first (when set), then the fallback sequence, deduplicated.
func ModelCandidates(preferred string, fallbacks []string) []string {
	out := make([]string, 0, len(fallbacks)+1)
	seen := make(map[string]bool)
	if preferred != "" {
		out = append(out, preferred)
		seen[preferred] = true
	}
	for _, m := range fallbacks {
		if !seen[m] {
			out = append(out, m)
			seen[m] = true
		}
	}
	return out
}

type failureKind int

const (
	failureFatal failureKind = iota
	failureRetryable
	failureUnavailable
)

// classifyProviderError decides whether a provider failure is worth
// retrying on the same model, worth skipping to the next candidate, or
// fatal for the whole call.
func classifyProviderError(err error) failureKind {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 429, 503:
			return failureRetryable
		case 404, 501:
			return failureUnavailable
		}
	}

	var aerr *openai.APIError
	if errors.As(err, &aerr) {
		switch aerr.HTTPStatusCode {
		case 429, 503:
			return failureRetryable
		case 404:
			return failureUnavailable
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource exhausted"),
		strings.Contains(msg, "overloaded"),
		strings.Contains(msg, "quota"):
		return failureRetryable
	case strings.Contains(msg, "not found"),
		strings.Contains(msg, "not supported"),
		strings.Contains(msg, "does not exist"),
		strings.Contains(msg, "deprecated"):
		return failureUnavailable
	}
	return failureFatal
}

// completeWithFallback walks the candidate list. Retryable failures retry
// the same model through the backoff schedule; unavailable models are
// skipped with a diagnostic; anything else aborts immediately. The two
// exhaustion outcomes are distinguishable: ProviderBusyError when at least
// one model kept rate-limiting, NoWorkingModelError when none existed.
func completeWithFallback(candidates []string, call func(model string) (string, error)) (string, error) {
	var attempts []ModelAttempt
	sawBusy := false

	for _, model := range candidates {
		var lastErr error
		for try := 0; ; try++ {
			out, err := call(model)
			if err == nil {
				return out, nil
			}
			lastErr = err
			if classifyProviderError(err) != failureRetryable || try >= len(retryBackoff) {
				break
			}
			time.Sleep(retryBackoff[try])
		}

		switch classifyProviderError(lastErr) {
		case failureRetryable:
			sawBusy = true
			attempts = append(attempts, ModelAttempt{Model: model, Reason: "rate limited: " + lastErr.Error()})
		case failureUnavailable:
			attempts = append(attempts, ModelAttempt{Model: model, Reason: lastErr.Error()})
		default:
			return "", lastErr
		}
	}

	if sawBusy {
		return "", &ProviderBusyError{ModelsTried: attemptedModels(attempts)}
	}
	return "", &NoWorkingModelError{Attempts: attempts}
}

// streamWithFallback is the streaming variant: candidates are walked the
// same way, but only while nothing has been delivered yet. Once call
// reports sent=true the turn is committed to that model and any error is
// surfaced as-is with the partial output left standing.
func streamWithFallback(candidates []string, call func(model string) (sent bool, err error)) error {
	var attempts []ModelAttempt
	sawBusy := false

	for _, model := range candidates {
		var lastErr error
		for try := 0; ; try++ {
			sent, err := call(model)
			if err == nil {
				return nil
			}
			if sent {
				return err
			}
			lastErr = err
			if classifyProviderError(err) != failureRetryable || try >= len(retryBackoff) {
				break
			}
			time.Sleep(retryBackoff[try])
		}

		switch classifyProviderError(lastErr) {
		case failureRetryable:
			sawBusy = true
			attempts = append(attempts, ModelAttempt{Model: model, Reason: "rate limited: " + lastErr.Error()})
		case failureUnavailable:
			attempts = append(attempts, ModelAttempt{Model: model, Reason: lastErr.Error()})
		default:
			return lastErr
		}
	}

	if sawBusy {
		return &ProviderBusyError{ModelsTried: attemptedModels(attempts)}
	}
	return &NoWorkingModelError{Attempts: attempts}
}

func attemptedModels(attempts []ModelAttempt) []string {
	models := make([]string, 0, len(attempts))
	for _, a := range attempts {
		models = append(models, a.Model)
	}
	return models
}
