package client

// hrefSet holds the URL templates for every resource the service exposes,
// as paths relative to the session endpoint. Home documents are not
// implemented by the service yet, so the set is fixed rather than parsed
// from an index resource.
type hrefSet struct {
	queues   string
	queue    string
	messages string
	message  string
	claims   string
	claim    string
	actions  string
	action   string
}

// deriveHrefs computes the href template set. Each nested template is its
// parent with a suffix segment and its own placeholder.
func deriveHrefs() hrefSet {
	var hrefs hrefSet

	hrefs.queues = "/queues"
	hrefs.queue = hrefs.queues + "/{queue_name}"
	hrefs.messages = hrefs.queue + "/messages"
	hrefs.message = hrefs.messages + "/{message_id}"
	hrefs.claims = hrefs.queues + "/claims"
	hrefs.claim = hrefs.queues + "/claims/{claim_id}"
	hrefs.actions = "/actions"
	hrefs.action = hrefs.actions + "/{action_id}"

	return hrefs
}

// populated reports whether the href set has been derived.
func (h hrefSet) populated() bool {
	return h.queues != ""
}
