/*
Package canopy is a customer-support triage engine. It classifies a query
into one of four categories (products, returns, general, unhandled),
answers the first three with retrieval-augmented generation, and escalates
the rest (including any low-confidence or failed run) to a fixed
human-handoff message.

The routing core is a deterministic single-pass state machine. Its two
non-deterministic collaborators, a text completion service and a passage
retriever, sit behind the interfaces in pkg/ports, so the whole pipeline
can be exercised with test doubles.

# Usage

	completer, err := openai.NewCompleter(apiKey, "gpt-4o-mini")
	if err != nil {
		log.Fatal(err)
	}
	retriever, err := bleve.NewRetriever()
	if err != nil {
		log.Fatal(err)
	}

	engine, err := canopy.New(completer, retriever)
	if err != nil {
		log.Fatal(err)
	}

	record, err := engine.Process(ctx, "What is your return policy?", "")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(record.Response)

The record always carries a non-empty response: business failures degrade
to the escalation branch instead of erroring out.
*/
package canopy
