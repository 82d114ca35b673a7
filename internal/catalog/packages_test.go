package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MirBabaTravels/booking_svc/internal/catalog"
)

func TestPackagesReturnsFullCatalog(t *testing.T) {
	packages := catalog.Packages()
	require.Len(t, packages, 6)

	seenSlugs := make(map[string]struct{}, len(packages))
	for _, tourPackage := range packages {
		require.NotEmpty(t, tourPackage.ID)
		require.NotEmpty(t, tourPackage.Title)
		require.NotEmpty(t, tourPackage.Slug)
		require.Positive(t, tourPackage.Price)
		require.NotEmpty(t, tourPackage.Itinerary)
		_, duplicate := seenSlugs[tourPackage.Slug]
		require.False(t, duplicate)
		seenSlugs[tourPackage.Slug] = struct{}{}
	}
}

func TestPackagesReturnsCopies(t *testing.T) {
	first := catalog.Packages()
	first[0].Title = "mutated"

	second := catalog.Packages()
	require.NotEqual(t, "mutated", second[0].Title)
}

func TestPackageBySlug(t *testing.T) {
	tourPackage, found := catalog.PackageBySlug("winter-wonderland")
	require.True(t, found)
	require.Equal(t, "winter-wonderland", tourPackage.Slug)

	_, foundMissing := catalog.PackageBySlug("no-such-trip")
	require.False(t, foundMissing)
}
