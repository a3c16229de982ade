package validate

// Form-level aggregation: each function returns a field -> message map,
// empty when the form is acceptable.

func put(errs map[string]string, field, msg string) {
	if msg != "" {
		errs[field] = msg
	}
}

func Registration(email, password, fullName, role, phone, address string) map[string]string {
	errs := map[string]string{}
	put(errs, "email", Email(email))
	put(errs, "password", Password(password))
	put(errs, "full_name", TextField(fullName, "Name", 2, 100, true))
	put(errs, "user_type", Role(role))
	put(errs, "phone", Phone(phone))
	if address != "" {
		put(errs, "address", TextField(address, "Address", 5, 500, false))
	}
	return errs
}

func NeedyRequestForm(title, description, category, urgency, contact, quantity string) map[string]string {
	errs := map[string]string{}
	put(errs, "title", TextField(title, "Title", 3, 200, true))
	put(errs, "description", TextField(description, "Description", 10, 2000, false))
	put(errs, "category", Category(category))
	put(errs, "urgency", Urgency(urgency))
	put(errs, "contact_info", ContactInfo(contact))
	put(errs, "quantity", Quantity(quantity))
	return errs
}

func DonorOfferForm(title, description, category, helpType, contact, quantity string) map[string]string {
	errs := map[string]string{}
	put(errs, "title", TextField(title, "Title", 3, 200, true))
	put(errs, "description", TextField(description, "Description", 10, 2000, false))
	put(errs, "category", Category(category))
	put(errs, "help_type", HelpType(helpType))
	put(errs, "contact_info", ContactInfo(contact))
	put(errs, "quantity", Quantity(quantity))
	return errs
}

func FundProgramForm(title, description, category, contact string) map[string]string {
	errs := map[string]string{}
	put(errs, "title", TextField(title, "Program title", 3, 200, true))
	put(errs, "description", TextField(description, "Description", 10, 2000, false))
	put(errs, "category", Category(category))
	put(errs, "contact_info", ContactInfo(contact))
	return errs
}

func ResponseForm(message, contact, name, quantity string) map[string]string {
	errs := map[string]string{}
	if message == "" {
		errs["message"] = "Message is required."
	} else {
		put(errs, "message", TextField(message, "Message", 1, 1000, false))
	}
	put(errs, "contact", ContactInfo(contact))
	if name != "" {
		put(errs, "name", TextField(name, "Name", 2, 100, false))
	}
	put(errs, "quantity", Quantity(quantity))
	return errs
}
