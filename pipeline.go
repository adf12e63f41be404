package feather2d

import "sync"

// task calls fn for every element of data, splitting data in contiguous chunks
// over workersCount goroutines. fn receives the index of the element in data.
func task[T any](workersCount int, data []T, fn func(i int, data T)) {
	if workersCount <= 0 {
		workersCount = 1
	}

	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := min(workerID*chunkSize, dataSize)
		end := min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
		}(start, end)
	}
	wg.Wait()
}
