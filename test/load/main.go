/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	almanac "github.com/dburkart/almanac/api"
)

/*
 * This tests aggressive request spamming from many pooled clients. Each
 * request carries text unique to its client so nothing is served from a
 * warm path by accident.
 */

func main() {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.NewString()
			client, err := almanac.NewClientPool("almanac://localhost:8001/en-us", 10)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}

			for i := 0; i < 1000; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					text := fmt.Sprintf("ticket %s-%d is due %d days from now at 5pm", id, i, i%30+1)
					_, err := client.Recognize(text, time.Time{})
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(1)
					}
				}(i)
			}
		}()
	}

	wg.Wait()
}
