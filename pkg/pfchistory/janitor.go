/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pfchistory

import (
	"context"
	"fmt"
)

// removeAllStatHistoryCounters deletes every record in the history table so event
// processing starts from an empty table.
func (o *Orch) removeAllStatHistoryCounters(ctx context.Context) error {
	keys, err := o.historyTable.GetKeys(ctx)
	if err != nil {
		return fmt.Errorf("%w: list %s: %w", ErrCleanupFailed, o.historyTable.Name(), err)
	}

	for _, key := range keys {
		if err := o.historyTable.Del(ctx, key); err != nil {
			return fmt.Errorf("%w: delete %s: %w", ErrCleanupFailed, key, err)
		}
	}

	o.metrics.addCleared(len(keys))
	o.logger.Info().Int("records", len(keys)).Str("table", o.historyTable.Name()).
		Msg("Cleared PFC stat history counters")

	return nil
}
