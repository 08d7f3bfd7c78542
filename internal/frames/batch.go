package frames

import (
	"context"
	"sync"

	"event-media/internal/logging"
	"event-media/internal/workers"
)

// maxBatchWorkers caps concurrent extractions; each one runs an ffmpeg
// process per frame.
const maxBatchWorkers = 4

// OpenDecoder creates a Decoder for one video source.
type OpenDecoder func(source string) (Decoder, error)

// BatchResult carries the outcome of one video's extraction.
type BatchResult struct {
	Source string
	Frames []Frame
	Err    error
}

// SampleAll extracts frames from several videos concurrently. Videos are
// independent: each worker opens its own decoder, and sampling within a
// video stays strictly sequential. Results preserve input order.
func SampleAll(ctx context.Context, sources []string, open OpenDecoder, targetFrameCount int) []BatchResult {
	results := make([]BatchResult, len(sources))
	if len(sources) == 0 {
		return results
	}

	sampler := NewSampler(targetFrameCount)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers.ForCPU(maxBatchWorkers); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = sampleOne(ctx, sources[i], open, sampler)
			}
		}()
	}

	for i := range sources {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func sampleOne(ctx context.Context, source string, open OpenDecoder, sampler *Sampler) BatchResult {
	result := BatchResult{Source: source}

	dec, err := open(source)
	if err != nil {
		result.Err = err
		return result
	}
	defer func() {
		if err := dec.Close(); err != nil {
			logging.Warn("Failed to close decoder for %s: %v", source, err)
		}
	}()

	result.Frames, result.Err = sampler.Sample(ctx, dec)
	return result
}
