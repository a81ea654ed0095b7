package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/mr-joshcrane/numbers"
	"github.com/mr-joshcrane/numbers/store"
)

func TestRun_PrintsRecordedTranscript(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	s, err := store.Open(path)
	assert.NoError(t, err)
	p := numbers.NewPublisher("numbers", numbers.WithStoreTransport(s))
	assert.NoError(t, numbers.Run(2, p))
	assert.NoError(t, store.Close(s))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{path}, &stdout, &stderr))
	want := "yielding number: 1\nnumber received: 1\n\n" +
		"yielding number: 2\nnumber received: 2\n\n"
	assert.Equal(t, want, stdout.String())
}

func TestRun_RequiresStore(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
}

func TestRun_PublisherArgument(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	s, err := store.Open(path)
	assert.NoError(t, err)
	assert.NoError(t, numbers.Run(1, numbers.NewPublisher("mypub", numbers.WithStoreTransport(s))))
	assert.NoError(t, numbers.Run(1, numbers.NewPublisher("other", numbers.WithStoreTransport(s))))
	assert.NoError(t, store.Close(s))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{path, "mypub"}, &stdout, &stderr))
	assert.Equal(t, "yielding number: 1\nnumber received: 1\n\n", stdout.String())

	stdout.Reset()
	assert.Equal(t, 0, run(context.Background(), []string{"--name", "mypub", path}, &stdout, &stderr))
	assert.Equal(t, "yielding number: 1\nnumber received: 1\n\n", stdout.String())
}

func TestRun_PrintsEveryRecordedRun(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	path := filepath.Join(t.TempDir(), "transcript.db")
	s, err := store.Open(path)
	assert.NoError(t, err)
	assert.NoError(t, numbers.Run(2, numbers.NewPublisher("numbers", numbers.WithStoreTransport(s), numbers.WithRun("r1"))))
	assert.NoError(t, numbers.Run(1, numbers.NewPublisher("numbers", numbers.WithStoreTransport(s), numbers.WithRun("r2"))))
	assert.NoError(t, store.Close(s))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{path}, &stdout, &stderr))
	want := "yielding number: 1\nnumber received: 1\n\n" +
		"yielding number: 2\nnumber received: 2\n\n" +
		"yielding number: 1\nnumber received: 1\n\n"
	assert.Equal(t, want, stdout.String())
}

func TestRun_RejectsExtraArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"a.db", "p", "extra"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage:")
}
