package utils

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckinQRProducesDecodablePNG(t *testing.T) {
	data, err := CheckinQR("https://portal.example.com/activity/a1/checkin")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, checkinQRSize, img.Bounds().Dx())
	assert.Equal(t, checkinQRSize, img.Bounds().Dy())
}

func TestCheckinQRRejectsEmptyURL(t *testing.T) {
	_, err := CheckinQR("")
	assert.Error(t, err)
}
