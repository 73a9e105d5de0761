package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestTranslator_Languages(t *testing.T) {
	tr := MustNew()

	got := map[language.Tag]bool{}
	for _, tag := range tr.Languages() {
		got[tag] = true
	}
	if !got[language.English] || !got[language.Russian] {
		t.Fatalf("expected en and ru bundles, got %v", tr.Languages())
	}
}

func TestLocalizer_AcceptLanguage(t *testing.T) {
	tr := MustNew()

	ru := tr.For("ru-RU,ru;q=0.9,en;q=0.5")
	if ru.T(ButtonLogout) != "Выйти" {
		t.Fatalf("expected russian logout caption, got %q", ru.T(ButtonLogout))
	}
	if ru.Lang() != "ru" {
		t.Fatalf("expected ru tag, got %q", ru.Lang())
	}

	en := tr.For("de-DE")
	if en.T(ButtonLogout) != "Log out" {
		t.Fatalf("expected english fallback, got %q", en.T(ButtonLogout))
	}
	if en.Lang() != "en" {
		t.Fatalf("expected en tag, got %q", en.Lang())
	}

	if tr.For().T(ErrorRequired) != "Required field" {
		t.Fatalf("empty preferences must fall back to english")
	}
}

func TestLocalizer_MissingID(t *testing.T) {
	if got := MustNew().For("en").T("no_such_message"); got != "no_such_message" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}

func TestLocales_HaveSameKeys(t *testing.T) {
	tr := MustNew()
	ids := []string{
		AppName, TitleLogin, TitleProfile, LabelLogin, LabelPassword, LabelSavePassword,
		ButtonSubmit, ErrorRequired, ErrorServerFallback, ProfileGreeting, ButtonLogout,
	}
	for _, lang := range []string{"en", "ru"} {
		l := tr.For(lang)
		for _, id := range ids {
			if l.T(id) == id {
				t.Fatalf("%s: missing translation for %s", lang, id)
			}
		}
	}
}
