package i18n

var catalogs = map[string]map[string]string{
	"en": english,
	"ru": russian,
}
