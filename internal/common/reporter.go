/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common

import (
	"go.uber.org/zap"

	"payments-engine-go/internal/ledger"
	"payments-engine-go/internal/models"
)

// LogReporter forwards every rejection to the structured logger. It is the
// diagnostic channel behind --debug; without it rejections are only counted.
type LogReporter struct {
	logger *zap.Logger
}

var _ ledger.Reporter = (*LogReporter)(nil)

func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Reject(rec models.Record, reason error) {
	fields := []zap.Field{
		zap.String("reason", reason.Error()),
		zap.Int("line", rec.Line),
		zap.String("type", string(rec.Type)),
		zap.Uint16("client", uint16(rec.Client)),
		zap.Uint32("tx", uint32(rec.Tx)),
	}
	if rec.HasAmount {
		fields = append(fields, zap.String("amount", rec.Amount.String()))
	}
	r.logger.Warn("Rejected transaction record", fields...)
}
