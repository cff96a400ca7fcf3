package geometry

import (
	"math/rand"
	"testing"

	"github.com/hd220/encephalon/common"
)

func TestNewBoxEcpSideLength(t *testing.T) {
	tests := []struct {
		name           string
		desiredPlastic int
		wantSide       int
	}{
		{"exact cube", 8, 2},
		{"rounds down", 26, 2}, // cbrt(26) < 3
		{"perfect cube 27", 27, 3},
		{"single cell", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewBoxEcp(tt.desiredPlastic, 0, 0, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := tt.wantSide * tt.wantSide * tt.wantSide
			if g.NumPlastic() != want {
				t.Errorf("NumPlastic() = %d, want %d (side %d)", g.NumPlastic(), want, tt.wantSide)
			}
		})
	}
}

func TestNewBoxEcpConstructionFailures(t *testing.T) {
	tests := []struct {
		name                                   string
		desiredPlastic, numSensory, numActuator, nearby int
	}{
		{"actuator exceeds face area", 8, 0, 5, 1},  // side 2, area 4
		{"sensory exceeds face area", 8, 5, 0, 1},
		{"nearby cube exceeds volume", 8, 0, 0, 27}, // nearby side 3, volume 8
		{"degenerate box", 0, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBoxEcp(tt.desiredPlastic, tt.numSensory, tt.numActuator, tt.nearby); err == nil {
				t.Fatalf("expected an error, got none")
			}
		})
	}
}

func TestRxEnumerationCoversEveryPlasticCell(t *testing.T) {
	g, err := NewBoxEcp(8, 0, 0, 1) // side 2, no actuators
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[common.Position]bool{}
	loc, kind := g.FirstRxLoc()
	seen[loc] = true
	if kind != Plastic {
		t.Fatalf("expected first position to be Plastic when numActuator=0, got %v", kind)
	}

	count := 1
	for {
		next, k, ok := g.NextRxLoc(loc)
		if !ok {
			break
		}
		if seen[next] {
			t.Fatalf("position %q enumerated twice", next)
		}
		seen[next] = true
		if k != Plastic {
			t.Fatalf("expected all positions Plastic when numActuator=0, got %v at %q", k, next)
		}
		loc = next
		count++
	}
	if count != g.NumPlastic() {
		t.Fatalf("enumerated %d positions, want %d", count, g.NumPlastic())
	}
}

func TestRxEnumerationReclassifiesFarFaceAsActuator(t *testing.T) {
	// side 2, face area 4; reclassify 2 of the 4 far-face cells.
	g, err := NewBoxEcp(8, 0, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	actuatorCount := 0
	loc, kind := g.FirstRxLoc()
	if kind == Actuator {
		actuatorCount++
	}
	for {
		next, k, ok := g.NextRxLoc(loc)
		if !ok {
			break
		}
		if k == Actuator {
			actuatorCount++
		}
		loc = next
	}
	if actuatorCount != 2 {
		t.Fatalf("expected exactly 2 actuator-reclassified cells, got %d", actuatorCount)
	}
}

func TestSensoryEnumerationCoversFace(t *testing.T) {
	g, err := NewBoxEcp(8, 4, 0, 1) // side 2, face area 4
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[common.Position]bool{}
	loc := g.FirstSensoryLoc()
	seen[loc] = true
	count := 1
	for {
		next, ok := g.NextSensoryLoc(loc)
		if !ok {
			break
		}
		if seen[next] {
			t.Fatalf("position %q enumerated twice", next)
		}
		seen[next] = true
		loc = next
		count++
	}
	if count != g.NumSensory() {
		t.Fatalf("enumerated %d sensory positions, want %d", count, g.NumSensory())
	}
}

func TestLocalRandomStaysInBoundsAtCorner(t *testing.T) {
	g, err := NewBoxEcp(27, 0, 0, 27) // side 3, nearby side 3
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	corner := g.LocHash(0, 0, 0)

	for i := 0; i < 200; i++ {
		loc, ok := g.LocalRandom(corner, rng)
		if !ok {
			t.Fatalf("expected LocalRandom to succeed at a corner")
		}
		l, err := parseLoc(loc)
		if err != nil {
			t.Fatalf("unexpected malformed hash: %v", err)
		}
		if l.x < 0 || l.x > 2 || l.y < 0 || l.y > 2 || l.z < 0 || l.z > 2 {
			t.Fatalf("LocalRandom escaped bounds: %+v", l)
		}
	}
}

func TestLocalRandomNoNearbyRegion(t *testing.T) {
	g, err := NewBoxEcp(8, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	if _, ok := g.LocalRandom(g.LocHash(0, 0, 0), rng); ok {
		t.Fatalf("expected LocalRandom to fail when nearbyCount rounds to 0")
	}
}
