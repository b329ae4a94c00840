// Package audit maintains the tamper-evident, hash-chained record of every
// mutation applied to the local snapshot.
//
// Each event commits to its predecessor through PrevHash and to its own
// content through Hash = SHA-256(prevHash|timestamp|type|entityId|deviceId|
// appVersion|canonical(payload)). Logs are values: Append returns a new log
// and leaves its input untouched. Verification walks the chain and reports
// the first broken link; what to do about a broken chain is the caller's
// policy.
package audit
