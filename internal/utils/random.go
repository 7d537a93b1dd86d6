package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mathrand "math/rand"
	"strings"
)

// GenerateValidationToken returns a 48-character hex capability string
// drawn from crypto/rand. The token is the only credential a client needs
// to decide on a timesheet, so it must be unguessable.
func GenerateValidationToken() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", mathrand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[mathrand.Intn(len(letters))]
	}
	return string(password)
}

// Fixture name pools for the seeder.
var commonFirstNames = []string{
	"Jean", "Marie", "Pierre", "Sophie", "Luc", "Camille", "Hugo", "Léa",
	"Nicolas", "Julie", "Thomas", "Emma", "Antoine", "Chloé", "Paul", "Manon",
}
var commonLastNames = []string{
	"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit",
	"Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel",
}

func GenerateRandomFirstName() string {
	return commonFirstNames[mathrand.Intn(len(commonFirstNames))]
}

func GenerateRandomLastName() string {
	return commonLastNames[mathrand.Intn(len(commonLastNames))]
}

// GenerateEmailFromName builds a plausible unique address for fixtures.
func GenerateEmailFromName(firstName, lastName, domainName string) string {
	local := fmt.Sprintf("%s.%s%d", strings.ToLower(firstName), strings.ToLower(lastName), mathrand.Intn(1000))
	return local + "@" + domainName
}
