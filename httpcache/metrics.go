// Copyright 2025 Jacob Repp <jacobrepp@gmail.com>
//
// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpcache

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const (
	modeHit   = "hit"
	modeMiss  = "miss"
	modeError = "error"
)

// ModeKey tags a recorded request with how it was served.
var ModeKey = tag.MustNewKey("forgedir.com/httpcache/mode")

// RequestCount counts cache-aware GETs by mode (hit, miss, error).
var RequestCount = stats.Int64(
	"forgedir.com/httpcache/requests",
	"Number of cache-aware GET requests",
	stats.UnitDimensionless,
)

// Views returns the opencensus views a host process should register
// to export httpcache metrics.
func Views() []*view.View {
	return []*view.View{
		{
			Name:        "forgedir.com/httpcache/requests_by_mode",
			Description: "Count of cache-aware GET requests by mode",
			Measure:     RequestCount,
			Aggregation: view.Count(),
			TagKeys:     []tag.Key{ModeKey},
		},
	}
}

func recordResult(mode string) {
	_ = stats.RecordWithTags(context.Background(),
		[]tag.Mutator{tag.Upsert(ModeKey, mode)},
		RequestCount.M(1),
	)
}
