// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package vectorstore keeps the native, index-accelerated vector column in
// step with the JSON embedding that is the source of truth.
//
// The JSON field is written by the caller's primary save. Only afterwards is
// the mirror attempted, bounded by a hard timeout; a timeout or error is
// logged as a warning and never fails the caller.
package vectorstore
