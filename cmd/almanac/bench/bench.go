/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package bench

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	almanac "github.com/dburkart/almanac/api"
	"github.com/dburkart/almanac/cmd/almanac/common"
)

var samples = []string{
	"Meet me on June 20, 2023 at 3pm EST",
	"sales over the last 3 days",
	"the review is next Friday at 10:30am",
	"we shipped 2 weeks ago and again yesterday",
	"from June 3 to June 7 the office is closed",
	"call me tomorrow morning, UTC+05:30",
}

var Command = &cobra.Command{
	Use:   "bench",
	Short: "Send a series of recognize requests and time them",

	Run: func(cmd *cobra.Command, args []string) {
		log := viper.Get("logger").(zerolog.Logger)

		concurrency := viper.GetInt("almanac.bench.concurrency")
		if concurrency < 1 {
			concurrency = 1
		}

		client, err := common.Client(log, uint(concurrency))
		if err != nil {
			log.Fatal().Err(err).Str("host", viper.GetString("almanac.host")).Msg("unable to connect to server")
		}
		defer client.Close()

		timeIt("RecognizeSamplesTest", client, RecognizeSamplesTest)
	},
}

func init() {
	// Flags for this command
	Command.Flags().Int("count", 1000, "Number of requests to send")
	Command.Flags().Int("concurrency", 4, "Number of requests in flight at once")

	// Bind flags to viper
	viper.BindPFlag("almanac.bench.count", Command.Flags().Lookup("count"))
	viper.BindPFlag("almanac.bench.concurrency", Command.Flags().Lookup("concurrency"))
}

func timeIt(name string, client almanac.Client, f func(client almanac.Client) int64) {
	t := time.Now()
	count := f(client)
	elapsed := time.Since(t)

	rate := float64(count) / elapsed.Seconds()
	log.Info().
		Str("dur", elapsed.String()).
		Str("name", name).
		Int64("requests", count).
		Str("rate", humanize.CommafWithDigits(rate, 1)+"/s").
		Send()
}

// RecognizeSamplesTest sends almanac.bench.count recognize requests over
// almanac.bench.concurrency workers and returns how many succeeded.
func RecognizeSamplesTest(client almanac.Client) int64 {
	count := viper.GetInt("almanac.bench.count")
	workers := viper.GetInt("almanac.bench.concurrency")
	if workers < 1 {
		workers = 1
	}

	var ok atomic.Int64
	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if _, err := client.Recognize(samples[i%len(samples)], time.Time{}); err != nil {
					log.Error().Err(err).Int("request", i).Send()
					continue
				}
				ok.Add(1)
			}
		}()
	}

	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return ok.Load()
}
