// Package blockproto implements the generic block-by-block
// download/upload loop every clone-mode driver is built on: walk block
// indices 0..N, let the caller produce the wire request or framed block,
// assemble or dispatch the result, and report progress at block
// boundaries.
package blockproto

// ProgressFunc is invoked at every block boundary with the number of
// blocks completed, the total block count, and a short human-readable
// message. Invoked on the same goroutine that drives the protocol;
// collaborators are responsible for forwarding it to their own UI thread
// if they render it asynchronously.
type ProgressFunc func(done, total int, msg string)

// RequestBlockFunc produces the bytes for block index i and returns the
// data that should be appended to the assembled download buffer.
type RequestBlockFunc func(i int) ([]byte, error)

// SendBlockFunc dispatches block index i (the blockSize bytes of data at
// that offset) to the wire and waits for it to be acknowledged.
type SendBlockFunc func(i int, data []byte) error

// Download walks block indices 0..N-1 where N = totalSize/blockSize
// rounded up, calling requestBlock for each and concatenating the results.
func Download(blockSize, totalSize int, requestBlock RequestBlockFunc, progress ProgressFunc) ([]byte, error) {
	if blockSize <= 0 {
		panic("blockproto: blockSize must be positive")
	}
	n := (totalSize + blockSize - 1) / blockSize
	out := make([]byte, 0, totalSize)

	for i := 0; i < n; i++ {
		block, err := requestBlock(i)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		if progress != nil {
			progress(i+1, n, "downloading")
		}
	}
	return out, nil
}

// DownloadSimple writes initCmd once, then reads blockSize bytes per
// block with no further per-block request, for protocols where the
// radio streams the whole image after a single trigger command.
func DownloadSimple(blockSize, totalSize int, writeInit func() error, readBlock func(i int) ([]byte, error), progress ProgressFunc) ([]byte, error) {
	if writeInit != nil {
		if err := writeInit(); err != nil {
			return nil, err
		}
	}
	return Download(blockSize, totalSize, readBlock, progress)
}

// Upload walks the same block indices over data and calls sendBlock for
// each blockSize-sized slice.
func Upload(blockSize int, data []byte, sendBlock SendBlockFunc, progress ProgressFunc) error {
	if blockSize <= 0 {
		panic("blockproto: blockSize must be positive")
	}
	n := (len(data) + blockSize - 1) / blockSize

	for i := 0; i < n; i++ {
		start := i * blockSize
		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}
		if err := sendBlock(i, data[start:end]); err != nil {
			return err
		}
		if progress != nil {
			progress(i+1, n, "uploading")
		}
	}
	return nil
}
