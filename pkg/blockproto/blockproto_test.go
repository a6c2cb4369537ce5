package blockproto

import (
	"bytes"
	"errors"
	"testing"
)

func TestDownloadAssemblesBlocksInOrder(t *testing.T) {
	source := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	blockSize := 4

	var progressCalls [][2]int
	got, err := Download(blockSize, len(source), func(i int) ([]byte, error) {
		start := i * blockSize
		end := start + blockSize
		if end > len(source) {
			end = len(source)
		}
		return source[start:end], nil
	}, func(done, total int, msg string) {
		progressCalls = append(progressCalls, [2]int{done, total})
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, source) {
		t.Fatalf("got % X, want % X", got, source)
	}
	if len(progressCalls) != 3 {
		t.Fatalf("expected 3 progress calls for 10 bytes in blocks of 4, got %d", len(progressCalls))
	}
	if progressCalls[2] != [2]int{3, 3} {
		t.Fatalf("final progress call should report completion, got %v", progressCalls[2])
	}
}

func TestDownloadPropagatesBlockError(t *testing.T) {
	wantErr := errors.New("boom")
	_, err := Download(4, 8, func(i int) ([]byte, error) {
		if i == 1 {
			return nil, wantErr
		}
		return []byte{0, 0, 0, 0}, nil
	}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected error to propagate, got %v", err)
	}
}

func TestUploadDispatchesEveryBlockWithCorrectSlice(t *testing.T) {
	data := []byte{10, 11, 12, 13, 14, 15, 16}
	blockSize := 3

	var sent [][]byte
	err := Upload(blockSize, data, func(i int, block []byte) error {
		cp := make([]byte, len(block))
		copy(cp, block)
		sent = append(sent, cp)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := [][]byte{{10, 11, 12}, {13, 14, 15}, {16}}
	if len(sent) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(sent), len(want))
	}
	for i := range want {
		if !bytes.Equal(sent[i], want[i]) {
			t.Fatalf("block %d: got % X, want % X", i, sent[i], want[i])
		}
	}
}

func TestDownloadSimpleWritesInitOnce(t *testing.T) {
	initCalls := 0
	_, err := DownloadSimple(4, 8, func() error {
		initCalls++
		return nil
	}, func(i int) ([]byte, error) {
		return []byte{0, 0, 0, 0}, nil
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if initCalls != 1 {
		t.Fatalf("expected writeInit called exactly once, got %d", initCalls)
	}
}
