package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

func GenerateOTP() string {
	// Generate a 6-digit OTP
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// GenerateMeetingURL returns the video-call link for a confirmed session
func GenerateMeetingURL() string {
	return fmt.Sprintf("https://meet.mindmatch.app/%s", uuid.NewString())
}
