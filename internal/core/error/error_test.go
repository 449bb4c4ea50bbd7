package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Chative-core-poc-v1/querychart/internal/chart"
)

func TestWrapRedis(t *testing.T) {
	if WrapRedis(nil) != nil {
		t.Fatal("WrapRedis(nil) should be nil")
	}

	err := WrapRedis(redis.Nil)
	if StatusOf(err) != http.StatusNotFound || !errors.Is(err, redis.Nil) {
		t.Fatalf("WrapRedis(redis.Nil) = %v (status %d)", err, StatusOf(err))
	}

	cause := errors.New("connection refused")
	err = WrapRedis(cause)
	if StatusOf(err) != http.StatusBadGateway || !errors.Is(err, cause) {
		t.Fatalf("WrapRedis(cause) = %v (status %d)", err, StatusOf(err))
	}
	if err.Error() != RedisErrorMessage+": connection refused" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestWrapChart(t *testing.T) {
	if WrapChart(nil) != nil {
		t.Fatal("WrapChart(nil) should be nil")
	}

	_, verr := chart.ParseKind("scatter")
	err := WrapChart(verr)
	if StatusOf(err) != http.StatusUnprocessableEntity {
		t.Fatalf("validation status = %d", StatusOf(err))
	}
	if !errors.Is(err, chart.ErrInvalidKind) || chart.KindOf(err) != chart.InvalidKind {
		t.Fatalf("wrapped validation error lost its kind: %v", err)
	}

	rerr := &chart.RenderError{Kind: chart.KindBar, Stage: "save", Err: errors.New("disk full")}
	err = WrapChart(rerr)
	if StatusOf(err) != http.StatusInternalServerError || !errors.Is(err, chart.ErrRenderFailure) {
		t.Fatalf("render error = %v (status %d)", err, StatusOf(err))
	}
}

func TestWrapToolArguments(t *testing.T) {
	err := WrapToolArguments(errors.New("unexpected end of input"))
	if StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("status = %d", StatusOf(err))
	}
	if WrapToolArguments(nil) != nil {
		t.Fatal("WrapToolArguments(nil) should be nil")
	}
}

func TestStatusOf(t *testing.T) {
	if got := StatusOf(errors.New("plain")); got != http.StatusInternalServerError {
		t.Fatalf("plain error status = %d", got)
	}
	wrapped := fmt.Errorf("loading: %w", New(nil, http.StatusTeapot, "teapot"))
	if got := StatusOf(wrapped); got != http.StatusTeapot {
		t.Fatalf("wrapped status = %d", got)
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) || appErr.Message != "teapot" || appErr.Error() != "teapot" {
		t.Fatalf("errors.As = %+v", appErr)
	}
}
