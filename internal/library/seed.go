package library

import (
	"fmt"
	"strings"

	"github.com/desertthunder/bop/internal/models"
)

// seedRows is the starter library installed by `library seed` and the demo
// command. Keys and BPMs follow commonly published values for these records;
// the set deliberately spreads across the wheel so part colors vary.
var seedRows = []models.Track{
	{Artist: "Frankie Knuckles", Title: "Your Love", Album: "Your Love", BPM: 118, Key: "8A", Energy: 6},
	{Artist: "Mr. Fingers", Title: "Can You Feel It", Album: "Amnesia", BPM: 120, Key: "5A", Energy: 6},
	{Artist: "Inner City", Title: "Good Life", Album: "Paradise", BPM: 122, Key: "9B", Energy: 7},
	{Artist: "Rhythim Is Rhythim", Title: "Strings of Life", Album: "Strings of Life", BPM: 124, Key: "11B", Energy: 8},
	{Artist: "A Guy Called Gerald", Title: "Voodoo Ray", Album: "Hot Lemonade", BPM: 123, Key: "4A", Energy: 7},
	{Artist: "808 State", Title: "Pacific State", Album: "Ninety", BPM: 120, Key: "10B", Energy: 6},
	{Artist: "Lil Louis", Title: "French Kiss", Album: "From the Mind of Lil Louis", BPM: 122, Key: "3A", Energy: 7},
	{Artist: "Jeff Mills", Title: "The Bells", Album: "Purpose Maker Compilation", BPM: 126, Key: "12A", Energy: 9},
	{Artist: "Robert Hood", Title: "Minus", Album: "Minimal Nation", BPM: 130, Key: "5A", Energy: 8},
	{Artist: "Green Velvet", Title: "Flash", Album: "Flash", BPM: 128, Key: "10A", Energy: 8},
	{Artist: "Laurent Garnier", Title: "The Man With the Red Face", Album: "Unreasonable Behaviour", BPM: 127, Key: "2A", Energy: 8},
	{Artist: "Daft Punk", Title: "Da Funk", Album: "Homework", BPM: 111, Key: "7A", Energy: 6},
	{Artist: "Underworld", Title: "Born Slippy (Nuxx)", Album: "Second Toughest in the Infants", BPM: 138, Key: "9A", Energy: 9},
	{Artist: "Âme", Title: "Rej", Album: "Rej", BPM: 120, Key: "6A", Energy: 6},
	{Artist: "Booka Shade", Title: "Body Language", Album: "Memento", BPM: 125, Key: "1A", Energy: 6},
	{Artist: "Moderat", Title: "A New Error", Album: "Moderat", BPM: 124, Key: "6B", Energy: 7},
}

// SeedLibrary inserts the starter tracks, skipping any that already exist.
// Returns the number of rows actually inserted.
func SeedLibrary(repo *TrackRepository) (int, error) {
	inserted := 0
	for _, row := range seedRows {
		err := repo.Create(models.NewLibraryTrack(0, row))
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint") {
				continue
			}
			return inserted, fmt.Errorf("failed to seed library: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

// SeedCount returns the size of the starter set.
func SeedCount() int {
	return len(seedRows)
}
