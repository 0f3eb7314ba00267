package finnaxml_test

import (
	"fmt"
	"log"
	"strings"

	finnaxml "github.com/NatLibFi/finna-xml"
)

func Example() {
	input := `<record xmlns="urn:example">` +
		`<titleSet>` +
		`<appellationValue pref="preferred">The Preferred Title</appellationValue>` +
		`<appellationValue pref="alternative">An Alternative Title</appellationValue>` +
		`</titleSet>` +
		`</record>`

	doc := finnaxml.New(finnaxml.WithDefaultNamespace("urn:example"))
	if err := doc.Parse(strings.NewReader(input)); err != nil {
		log.Fatal(err)
	}

	path, err := finnaxml.ParsePath("titleSet/appellationValue")
	if err != nil {
		log.Fatal(err)
	}
	titles, err := doc.All(nil, path)
	if err != nil {
		log.Fatal(err)
	}
	for _, title := range titles {
		if pref, _ := doc.Attribute(title, "pref"); pref == "preferred" {
			fmt.Println(title.Value())
		}
	}
	// Output: The Preferred Title
}
