package auction

// cardScript collects up to %d auction cards from a results page.
const cardScript = `
(function() {
	var results = [];
	var limit = %d;
	var areaRe = /\d[\d,.]*\s*(sq\.?\s*(ft|feet|m|mt|mtr|yd|yard)|sqft|sqmt|sqm|sqyd|sft|gaj|square\s+(feet|met|yard)|yard area)/i;
	var priceRe = /(₹|rs\.?|inr|lakh|lac|crore)/i;

	var cardSelectors = [
		'[data-testid="property-card"]',
		'[data-testid="auction-card"]',
		'.auction-card',
		'.property-card',
		'article'
	];

	var cards = [];
	for (var si = 0; si < cardSelectors.length; si++) {
		cards = document.querySelectorAll(cardSelectors[si]);
		if (cards.length > 0) break;
	}

	var seen = {};
	for (var i = 0; i < cards.length && results.length < limit; i++) {
		var card = cards[i];
		var link = card.querySelector('a[href]');
		var href = link ? link.href : '';
		if (!href || seen[href]) continue;
		seen[href] = true;

		var lines = (card.innerText || '').split('\n').map(function(l){return l.trim();}).filter(Boolean);
		var titleEl = card.querySelector('h2, h3, [class*="title"]');
		var locEl = card.querySelector('[class*="location"], [class*="address"]');

		results.push({
			title:    titleEl ? titleEl.innerText.trim() : (lines[0] || ''),
			price:    lines.find(function(l){return priceRe.test(l);}) || '',
			location: locEl ? locEl.innerText.trim() : (lines[1] || ''),
			area:     lines.find(function(l){return areaRe.test(l);}) || '',
			url:      href
		});
	}
	return results;
})()
`

// nextPageScript returns the href of the pagination "next" link, or ''.
const nextPageScript = `
(function() {
	var candidates = [
		document.querySelector('a[rel="next"]'),
		document.querySelector('a[aria-label="Next"]'),
		document.querySelector('li.next a'),
		document.querySelector('.pagination a.next')
	];
	for (var i = 0; i < candidates.length; i++) {
		if (candidates[i] && candidates[i].href) return candidates[i].href;
	}
	var links = document.querySelectorAll('nav a, .pagination a');
	for (var j = 0; j < links.length; j++) {
		var text = links[j].innerText.trim().toLowerCase();
		if (text === 'next' || text === '>' || text === '»') return links[j].href;
	}
	return '';
})()
`

const detailScript = `
(function() {
	var areaRe = /\d[\d,.]*\s*(sq\.?\s*(ft|feet|m|mt|mtr|yd|yard)|sqft|sqmt|sqm|sqyd|sft|gaj|square\s+(feet|met|yard)|yard area)[^\n]{0,30}/i;
	var priceRe = /(₹|rs\.?|inr)\s*[\d,.]+\s*(crore|lakh|lac)?/i;
	var text = (document.querySelector('main') || document.body).innerText || '';

	var area = text.match(areaRe);
	var price = text.match(/reserve[^\n]*/i);
	var priceMatch = (price ? price[0] : text).match(priceRe);

	var paras = document.querySelectorAll('main p, .description p, [class*="description"]');
	var texts = [];
	for (var j = 0; j < paras.length && texts.join(' ').length < 400; j++) {
		var t = paras[j].innerText.trim();
		if (t.length > 20) texts.push(t);
	}

	return {
		price:       priceMatch ? priceMatch[0] : '',
		area:        area ? area[0] : '',
		description: texts.join(' ').substring(0, 500)
	};
})()
`
