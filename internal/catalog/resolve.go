package catalog

import (
	"fmt"

	"github.com/ateliersillage/sillage-backend/internal/locale"
	"github.com/ateliersillage/sillage-backend/pkg/db/models"
)

// ResolvedCopy is the display text for a product after locale fallback.
type ResolvedCopy struct {
	Name       string
	Concept    string
	Sensations string
}

// ResolveCopy applies the two-tier translation fallback: the requested locale,
// then the default locale, then the raw slug so nothing renders empty.
func ResolveCopy(p *models.Product, tag string) ResolvedCopy {
	var requested, fallback *models.ProductTranslation
	for i := range p.Translations {
		tr := &p.Translations[i]
		switch tr.Locale {
		case tag:
			requested = tr
		case locale.DefaultLocale:
			fallback = tr
		}
	}
	if requested == nil {
		requested = fallback
	}
	if requested == nil {
		return ResolvedCopy{Name: p.Slug}
	}
	out := ResolvedCopy{
		Name:       requested.Name,
		Concept:    requested.Concept,
		Sensations: requested.Sensations,
	}
	if out.Name == "" {
		if fallback != nil && fallback.Name != "" {
			out.Name = fallback.Name
		} else {
			out.Name = p.Slug
		}
	}
	return out
}

// ResolveVolume locates the purchasable offering for a volume id at the
// requested locale, falling back to the default locale's offering.
func ResolveVolume(p *models.Product, volumeID int64, tag string) *models.ProductVolume {
	var fallback *models.ProductVolume
	for i := range p.Volumes {
		v := &p.Volumes[i]
		if v.VolumeID != volumeID {
			continue
		}
		if v.Locale == tag {
			return v
		}
		if v.Locale == locale.DefaultLocale {
			fallback = v
		}
	}
	return fallback
}

// ResolveVolumeLabel returns the localized size label, falling back to the
// default locale and finally to a milliliter rendering.
func ResolveVolumeLabel(v *models.ProductVolume, tag string) string {
	var fallback string
	for _, l := range v.Volume.Labels {
		if l.Locale == tag {
			return l.Label
		}
		if l.Locale == locale.DefaultLocale {
			fallback = l.Label
		}
	}
	if fallback != "" {
		return fallback
	}
	if v.Volume.Milliliters > 0 {
		return fmt.Sprintf("%d mL", v.Volume.Milliliters)
	}
	return ""
}

// ResolveCollectionName returns the localized collection name with the same
// fallback chain, or empty when the product has no collection.
func ResolveCollectionName(p *models.Product, tag string) string {
	if p.Collection == nil {
		return ""
	}
	return ResolveCollection(p.Collection, tag)
}

// ResolveCollection resolves a collection's display name directly.
func ResolveCollection(c *models.Collection, tag string) string {
	var fallback string
	for _, tr := range c.Translations {
		if tr.Locale == tag {
			return tr.Name
		}
		if tr.Locale == locale.DefaultLocale {
			fallback = tr.Name
		}
	}
	if fallback != "" {
		return fallback
	}
	return c.Slug
}
