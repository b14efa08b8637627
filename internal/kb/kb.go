// Package kb carries the built-in TechGear Electronics knowledge base so
// the server and CLI answer real questions out of the box. The ingestion
// pipeline that would replace this in production is out of scope; these
// passages are the already-chunked result.
package kb

// Passage is one retrievable chunk of knowledge-base text.
type Passage struct {
	ID   string
	Text string
}

// Default returns the compiled-in passage set.
func Default() []Passage {
	return []Passage{
		{
			ID: "product-smartwatch-pro-x",
			Text: `Product: SmartWatch Pro X
Price: ₹15,999
Features: 1.4" AMOLED display, heart-rate and SpO2 monitoring, GPS, 5ATM water resistance, 10-day battery life.
Availability: In stock. Ships within 2 business days.`,
		},
		{
			ID: "product-gaming-laptop-titan",
			Text: `Product: Titan Gaming Laptop 15
Price: ₹89,999
Features: 15.6" 165Hz display, 8-core CPU, RTX-class GPU, 16GB RAM, 1TB SSD, RGB keyboard.
Availability: In stock in most regions.`,
		},
		{
			ID: "product-wireless-earbuds-air",
			Text: `Product: AirSound Wireless Earbuds
Price: ₹4,499
Features: Active noise cancellation, 30-hour total battery with case, Bluetooth 5.3, IPX5 sweat resistance.
Availability: In stock.`,
		},
		{
			ID: "product-powerbank-20k",
			Text: `Product: ChargeMax Power Bank 20000mAh
Price: ₹2,299
Features: 22.5W fast charging, dual USB-A plus USB-C output, airline safe.
Availability: In stock.`,
		},
		{
			ID: "returns-policy",
			Text: `Return Policy: TechGear Electronics accepts returns within 30 days of delivery for a full refund. Items must be in original packaging with all accessories. Refunds are processed to the original payment method within 5-7 business days after the returned item is inspected.`,
		},
		{
			ID: "returns-exchange",
			Text: `Exchanges: Defective items can be exchanged within 30 days at no cost. For size or model exchanges, initiate a return and place a new order. Exchange shipping for defective items is free.`,
		},
		{
			ID: "general-warranty",
			Text: `Warranty: All TechGear products carry a 1-year manufacturer warranty covering defects in materials and workmanship. Wearables and earbuds include 6 months of battery coverage. Physical damage and water damage outside rated resistance are not covered.`,
		},
		{
			ID: "general-shipping",
			Text: `Shipping: Standard shipping (3-5 business days) is free on orders above ₹999. Express shipping (1-2 business days) is available for ₹199. Orders placed before 2PM IST ship the same day.`,
		},
		{
			ID: "general-support",
			Text: `Customer Support: Reach us at support@techgear.com. Support hours are Mon-Sat, 9AM-6PM IST. Typical response time is within 24 hours.`,
		},
	}
}
