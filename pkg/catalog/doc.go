// Package catalog loads option lists for searchable selects and renders them
// as native <select> markup.
//
// Catalogs come from JSON/YAML files:
//
//	catalogs:
//	  country:
//	    label: Country
//	    placeholder: Select...
//	    selected: gb
//	    options:
//	      - {value: us, label: United States}
//	      - {value: gb, label: United Kingdom}
//
// or from enum properties in OpenAPI request bodies (FromOpenAPI). Labels are
// reduced to plain text before they reach the document.
package catalog
