// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recovery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuGH/playcore/internal/engine"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{
			name: "source with behind live window cause",
			err:  engine.SourceError(engine.ErrBehindLiveWindow),
			want: RecoverableLiveWindow,
		},
		{
			name: "behind live window deep in chain",
			err: engine.SourceError(fmt.Errorf("chunk 12: %w",
				fmt.Errorf("segment fetch: %w", engine.ErrBehindLiveWindow))),
			want: RecoverableLiveWindow,
		},
		{
			name: "wrapped engine error",
			err:  fmt.Errorf("listener: %w", engine.SourceError(engine.ErrBehindLiveWindow)),
			want: RecoverableLiveWindow,
		},
		{
			name: "source with other cause",
			err:  engine.SourceError(errors.New("404")),
			want: Fatal,
		},
		{
			name: "renderer with behind live window cause",
			err:  &engine.Error{Type: engine.TypeRenderer, Cause: engine.ErrBehindLiveWindow},
			want: Fatal,
		},
		{
			name: "bare sentinel",
			err:  engine.ErrBehindLiveWindow,
			want: Fatal,
		},
		{
			name: "nil",
			err:  nil,
			want: Fatal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

type judge func(error) bool

func (j judge) IsSeriousError(err error) bool { return j(err) }

func TestClassifyReport(t *testing.T) {
	serious := errors.New("unauthorized")
	j := judge(func(err error) bool { return errors.Is(err, serious) })

	assert.Equal(t, ReportSerious, ClassifyReport(j, fmt.Errorf("send: %w", serious)))
	assert.Equal(t, ReportIgnored, ClassifyReport(j, errors.New("timeout")))
	assert.Equal(t, ReportIgnored, ClassifyReport(j, nil))
	assert.Equal(t, ReportIgnored, ClassifyReport(nil, serious))
	assert.Equal(t, "serious", ReportSerious.String())
	assert.Equal(t, "recoverable_live_window", RecoverableLiveWindow.String())
}
