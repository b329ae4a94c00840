package store

const (
	createUser = `INSERT INTO users (login, auth_hash, name, encryption_salt)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, auth_hash, name, encryption_salt, created_at;`

	findUserByLogin = `SELECT user_id, login, auth_hash, name, encryption_salt, created_at
    FROM users
    WHERE login = $1;`

	getVault = `SELECT user_id, blob, meta_updated_at, meta_schema, last_event_hash, app_version, device_id, updated_at
		FROM vaults
		WHERE user_id = $1;`

	upsertVault = `INSERT INTO vaults (
			user_id,
			blob,
			meta_updated_at,
			meta_schema,
			last_event_hash,
			app_version,
			device_id,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			blob = EXCLUDED.blob,
			meta_updated_at = EXCLUDED.meta_updated_at,
			meta_schema = EXCLUDED.meta_schema,
			last_event_hash = EXCLUDED.last_event_hash,
			app_version = EXCLUDED.app_version,
			device_id = EXCLUDED.device_id,
			updated_at = NOW()
		RETURNING updated_at;`

	deleteVault = `DELETE FROM vaults WHERE user_id = $1;`

	deleteAllVersions = `DELETE FROM vault_versions WHERE user_id = $1;`

	// the revoked flag is only ever set by revokeDevice
	upsertDevice = `INSERT INTO devices (user_id, device_id, label, platform, user_agent, last_seen)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, device_id) DO UPDATE SET
			label = CASE WHEN EXCLUDED.label = '' THEN devices.label ELSE EXCLUDED.label END,
			platform = CASE WHEN EXCLUDED.platform = '' THEN devices.platform ELSE EXCLUDED.platform END,
			user_agent = EXCLUDED.user_agent,
			last_seen = NOW()
		RETURNING device_id, label, platform, user_agent, last_seen, revoked, revoked_at;`

	heartbeatDevice = `UPDATE devices SET last_seen = NOW()
		WHERE user_id = $1 AND device_id = $2;`

	revokeDevice = `UPDATE devices SET revoked = TRUE, revoked_at = COALESCE(revoked_at, NOW())
		WHERE user_id = $1 AND device_id = $2;`

	deleteDevice = `DELETE FROM devices WHERE user_id = $1 AND device_id = $2;`
)
