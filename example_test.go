package docidx_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/docidx"
	"github.com/hupe1980/docidx/model"
)

// Example demonstrates adding documents and querying them.
func Example() {
	c, err := docidx.New([]model.Field{
		{Name: "title", Type: model.FieldTypeString, Indexed: true},
		{Name: "year", Type: model.FieldTypeNumber, Indexed: true},
		{Name: "tags", Type: model.FieldTypeTags, Indexed: true},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, v := range []model.Values{
		{"title": model.String("The Go Programming Language"), "year": model.Number(2015), "tags": model.Strings("go", "book")},
		{"title": model.String("Programming Rust"), "year": model.Number(2017), "tags": model.Strings("rust", "book")},
		{"title": model.String("Go in Practice"), "year": model.Number(2016), "tags": model.Strings("go")},
	} {
		if _, err := c.Add(model.NewDocument(v)); err != nil {
			log.Fatal(err)
		}
	}

	docs, err := c.Find(model.Query{
		"title": model.String("Programming"),
		"tags":  model.String("go"),
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range docs {
		fmt.Println(d.ID, d.Values["title"])
	}
	// Output: 1 "The Go Programming Language"
}

// Example_removeMatched demonstrates deleting by query.
func Example_removeMatched() {
	c, err := docidx.New([]model.Field{
		{Name: "status", Type: model.FieldTypeTag, Indexed: true},
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, s := range []string{"open", "closed", "closed"} {
		if _, err := c.Add(model.NewDocument(model.Values{"status": model.String(s)})); err != nil {
			log.Fatal(err)
		}
	}

	n, err := c.RemoveMatched(model.Query{"status": model.String("closed")})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(n, c.Len())
	// Output: 2 1
}

// Example_binarySnapshot demonstrates moving a collection through its
// binary form.
func Example_binarySnapshot() {
	fields := []model.Field{{Name: "name", Type: model.FieldTypeString, Indexed: true}}

	src, _ := docidx.New(fields, docidx.WithCompression(docidx.CompressionZSTD))
	_, _ = src.Add(model.NewDocument(model.Values{"name": model.String("gopher")}))

	data, err := src.MarshalBinary()
	if err != nil {
		log.Fatal(err)
	}

	dst, _ := docidx.New(fields)
	if err := dst.UnmarshalBinary(data); err != nil {
		log.Fatal(err)
	}

	ids, _ := dst.FindIDs(model.Query{"name": model.String("phe")})
	fmt.Println(ids.ToArray())
	// Output: [1]
}
