// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	loadLocalState = `SELECT state, updated_at FROM local_state WHERE id = 1;`

	saveLocalState = `
		INSERT INTO local_state (id, state, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at;`

	clearLocalState = `DELETE FROM local_state;`

	getKV = `SELECT value FROM kv WHERE key = ?;`

	setKV = `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	deleteKV = `DELETE FROM kv WHERE key = ?;`
)
