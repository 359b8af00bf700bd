package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo_FillsBlanks(t *testing.T) {
	b := NewAppBuildInfo("v1.0.0", "", "")

	assert.Equal(t, "v1.0.0", b.Version)
	assert.Equal(t, BuildValueUnknown, b.Date)
	assert.Equal(t, BuildValueUnknown, b.Commit)
	assert.Equal(t, "version=v1.0.0 date=N/A commit=N/A", b.String())
}

func TestAppBuildInfo_HasVersion(t *testing.T) {
	assert.True(t, NewAppBuildInfo("v1.0.0", "", "").HasVersion())
	assert.False(t, NewAppBuildInfo("", "", "").HasVersion())
	assert.False(t, AppBuildInfo{}.HasVersion())
}
