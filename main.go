package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"caseodds/cmd"
	"caseodds/models"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupts; in-flight requests are cancelled through ctx
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, cancelling run...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		if hint := errorHint(err); hint != "" {
			log.Printf("Hint: %s", hint)
		}
		log.Fatal("Application error: ", err)
	}
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "check SECTION_NAME and CASE_NAME against the live catalog"
	case errors.Is(err, models.ErrFetchFailed):
		return "the upstream API is unreachable or rejected the request; try again later or change USER_AGENT"
	case errors.Is(err, models.ErrParseFailed):
		return "the upstream response format changed; delete the cached files in DATA_DIR and retry"
	case errors.Is(err, models.ErrCacheIO):
		return "check that DATA_DIR and RESULTS_DIR are writable"
	case errors.Is(err, models.ErrInvalidOdds):
		return "the odds listing has no usable chances"
	default:
		return ""
	}
}
