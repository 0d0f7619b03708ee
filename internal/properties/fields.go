package properties

import (
	"strconv"

	"sitebuilder/internal/domain"
)

func contentFields(e domain.Element) []Field {
	switch e.Type {
	case domain.ElementHeading, domain.ElementSubheading, domain.ElementButton, domain.ElementLink:
		return []Field{{Key: "content", Label: "Text", Kind: KindText, Target: TargetContent, Value: e.Content}}
	case domain.ElementParagraph:
		return []Field{{Key: "content", Label: "Text", Kind: KindTextarea, Target: TargetContent, Value: e.Content, Rows: 4}}
	case domain.ElementProgress:
		return []Field{{
			Key: "content", Label: "Progress Value (%)", Kind: KindSlider, Target: TargetContent,
			Value: strconv.Itoa(intOr(e.Content, 50)), Min: 0, Max: 100, Step: 1,
		}}
	}
	return nil
}

func styleFields(e domain.Element) []Field {
	s := e.Style
	var fields []Field

	switch e.Type {
	case domain.ElementHeading, domain.ElementSubheading, domain.ElementParagraph, domain.ElementLink:
		fields = append(fields,
			Field{
				Key: "fontSize", Label: "Font Size", Kind: KindSlider, Target: TargetStyle, Property: "fontSize",
				Value: strconv.Itoa(intOr(s.String("fontSize"), 16)), Min: 0, Max: 72, Step: 1, Unit: "px",
			},
			Field{
				Key: "textAlign", Label: "Text Alignment", Kind: KindChoice, Target: TargetStyle, Property: "textAlign",
				Value:   s.String("textAlign"),
				Options: []Option{{"left", "Left"}, {"center", "Center"}, {"right", "Right"}},
			},
			toggle("fontWeight", "Bold", "bold", s),
			toggle("fontStyle", "Italic", "italic", s),
			toggle("textDecoration", "Underline", "underline", s),
			color("color", "Text Color", s, "#000000"),
		)

	case domain.ElementButton:
		fields = append(fields,
			color("backgroundColor", "Background Color", s, "#3b82f6"),
			color("color", "Text Color", s, "white"),
			Field{
				Key: "borderRadius", Label: "Border Radius", Kind: KindSlider, Target: TargetStyle, Property: "borderRadius",
				Value: strconv.Itoa(intOr(s.String("borderRadius"), 4)), Min: 0, Max: 20, Step: 1, Unit: "px",
			},
			selectField("paddingLeft", "Padding Horizontal", s, "20px",
				Option{"8px", "Small (8px)"}, Option{"16px", "Medium (16px)"}, Option{"24px", "Large (24px)"}),
			selectField("paddingTop", "Padding Vertical", s, "10px",
				Option{"4px", "Small (4px)"}, Option{"8px", "Medium (8px)"}, Option{"12px", "Large (12px)"}),
		)

	case domain.ElementImage, domain.ElementVideo, domain.ElementMap, domain.ElementCarousel:
		fields = append(fields,
			selectField("width", "Width", s, "100%",
				Option{"100%", "Full Width"}, Option{"75%", "75% Width"}, Option{"50%", "50% Width"}, Option{"25%", "25% Width"}),
			selectField("height", "Height", s, "300px",
				Option{"200px", "Small (200px)"}, Option{"300px", "Medium (300px)"},
				Option{"400px", "Large (400px)"}, Option{"500px", "Extra Large (500px)"}),
		)

	case domain.ElementSpacer:
		fields = append(fields, Field{
			Key: "height", Label: "Height", Kind: KindSlider, Target: TargetStyle, Property: "height",
			Value: strconv.Itoa(intOr(s.String("height"), 40)), Min: 0, Max: 200, Step: 10, Unit: "px",
		})

	case domain.ElementContainer:
		bg := color("backgroundColor", "Background Color", s, "")
		bg.Placeholder = "transparent"
		fields = append(fields,
			bg,
			selectField("border", "Border", s, "1px solid #e5e7eb",
				Option{"none", "None"}, Option{"1px solid #e5e7eb", "Solid"},
				Option{"1px dashed #e5e7eb", "Dashed"}, Option{"2px solid #e5e7eb", "Thick"}),
			selectField("borderRadius", "Border Radius", s, "4px",
				Option{"0", "None"}, Option{"4px", "Small (4px)"}, Option{"8px", "Medium (8px)"}, Option{"12px", "Large (12px)"}),
			selectField("padding", "Padding", s, "20px",
				Option{"0", "None"}, Option{"10px", "Small (10px)"}, Option{"20px", "Medium (20px)"}, Option{"40px", "Large (40px)"}),
		)

	case domain.ElementDivider:
		fields = append(fields, selectField("borderTop", "Style", s, "1px solid #e5e7eb",
			Option{"1px solid #e5e7eb", "Solid"}, Option{"1px dashed #e5e7eb", "Dashed"},
			Option{"2px solid #e5e7eb", "Thick"}, Option{"3px solid #e5e7eb", "Extra Thick"}))

	case domain.ElementColumns:
		fields = append(fields,
			selectField("gridTemplateColumns", "Column Layout", s, "1fr 1fr",
				Option{"1fr 1fr", "Two Equal Columns"}, Option{"1fr 1fr 1fr", "Three Equal Columns"},
				Option{"2fr 1fr", "Left Wide (2:1)"}, Option{"1fr 2fr", "Right Wide (1:2)"}),
			selectField("gap", "Gap Between Columns", s, "20px",
				Option{"8px", "Small (8px)"}, Option{"16px", "Medium (16px)"},
				Option{"24px", "Large (24px)"}, Option{"32px", "Extra Large (32px)"}),
		)
	}

	// margin is offered for every type
	return append(fields, selectField("margin", "Margin", s, "0",
		Option{"0", "None"}, Option{"5px", "Small (5px)"}, Option{"10px", "Medium (10px)"}, Option{"20px", "Large (20px)"}))
}

func advancedFields(e domain.Element) []Field {
	return []Field{
		{Key: "elementId", Label: "Element ID", Kind: KindReadOnly, Target: TargetNone, Value: e.ID},
		{Key: "remove", Label: "Remove Element", Kind: KindAction, Target: TargetRemove},
	}
}

func toggle(prop, label, on string, s domain.Style) Field {
	return Field{
		Key: prop, Label: label, Kind: KindToggle, Target: TargetStyle, Property: prop,
		Value: s.String(prop), Options: []Option{{on, label}}, Active: s.String(prop) == on,
	}
}

func color(prop, label string, s domain.Style, fallback string) Field {
	return Field{
		Key: prop, Label: label, Kind: KindColor, Target: TargetStyle, Property: prop,
		Value: or(s.String(prop), fallback),
	}
}

func selectField(prop, label string, s domain.Style, fallback string, opts ...Option) Field {
	return Field{
		Key: prop, Label: label, Kind: KindSelect, Target: TargetStyle, Property: prop,
		Value: or(s.String(prop), fallback), Options: opts,
	}
}
