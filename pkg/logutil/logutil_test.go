// Copyright 2024 Flint Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetGlobalLogger(t *testing.T) {
	require.NotNil(t, GetGlobalLogger())
}

func TestSetupLogger(t *testing.T) {
	SetupLogger(&LogConfig{DisableStore: true})
	require.NotNil(t, GetGlobalLogger())
	Info("no-op sink")

	SetupLogger(&LogConfig{Level: "debug"})
	require.True(t, GetGlobalLogger().Core().Enabled(zapcore.DebugLevel))
}
