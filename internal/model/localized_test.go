package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedTextResolve(t *testing.T) {
	both := LocalizedText{EN: "Medical", AR: "طبي"}
	assert.Equal(t, "Medical", both.Resolve(LocaleEN))
	assert.Equal(t, "طبي", both.Resolve(LocaleAR))

	enOnly := LocalizedText{EN: "Medical"}
	assert.Equal(t, "Medical", enOnly.Resolve(LocaleAR), "missing Arabic falls back to English")

	arOnly := LocalizedText{AR: "طبي"}
	assert.Equal(t, "طبي", arOnly.Resolve(LocaleEN), "missing English falls back to Arabic")
}

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, LocaleAR, NormalizeLocale("ar"))
	assert.Equal(t, LocaleAR, NormalizeLocale("ar-EG,ar;q=0.9"))
	assert.Equal(t, LocaleEN, NormalizeLocale("en-US"))
	assert.Equal(t, LocaleEN, NormalizeLocale(""))
	assert.Equal(t, LocaleEN, NormalizeLocale("fr"))
}

func TestProfileDisplayName(t *testing.T) {
	ar := "أحمد"
	p := Profile{FullName: "Ahmed", FullNameAr: &ar}
	name := p.DisplayName()
	assert.Equal(t, "Ahmed", name.EN)
	assert.Equal(t, "أحمد", name.AR)

	bare := Profile{FullName: "Sara"}
	assert.Equal(t, "Sara", bare.DisplayName().Resolve(LocaleAR))
}
